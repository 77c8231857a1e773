package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/repository/mocks"
	"go_4_vocab_learn/internal/service"
)

const testProfileKey = "@user_data"

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keySave  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}
)

// newProfiles はロード済みのプロフィールサービスを返します。loggedIn なら u1 でログインしておく
func newProfiles(t *testing.T, loggedIn bool) (service.ProfileService, *mocks.KeyValueRepository) {
	t.Helper()
	kv := mocks.NewKeyValueRepository(t)
	kv.On("Get", mock.Anything, testProfileKey).Return("", model.ErrNotFound).Once()

	profiles := service.NewProfileService(kv, testProfileKey)
	require.NoError(t, profiles.Load(context.Background()))

	if loggedIn {
		kv.On("Set", mock.Anything, testProfileKey, mock.Anything).Return(nil).Once()
		_, err := profiles.Login(context.Background(), &model.LoginRequest{ID: "u1", Email: "a@b.com", Name: "Aiko", Level: model.LevelBeginner})
		require.NoError(t, err)
	}
	return profiles, kv
}

func press(t *testing.T, m GoalModel, msgs ...tea.KeyMsg) (GoalModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func pressTopics(t *testing.T, m TopicsModel, msgs ...tea.KeyMsg) (TopicsModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestGoalModel_SaveThenBack(t *testing.T) {
	profiles, kv := newProfiles(t, true)
	kv.On("Set", mock.Anything, testProfileKey, mock.Anything).Return(nil).Once()

	m := NewGoalModel(context.Background(), profiles)
	// travel を選び、ドロップダウンで 10 分を選ぶ
	m, _ = press(t, m, keyDown, keyEnter, keyTab, keyDown, keyEnter)
	assert.False(t, m.dropdownOpen)
	assert.Equal(t, 10, m.minutes)

	_, cmd := press(t, m, keySave)
	require.NotNil(t, cmd)
	assert.IsType(t, backMsg{}, cmd())

	cur, _ := profiles.Current()
	assert.Equal(t, "travel", cur.Goal)
	assert.Equal(t, 10, cur.DailyMinutes)
}

func TestGoalModel_BackDiscardsSelection(t *testing.T) {
	profiles, _ := newProfiles(t, true)

	m := NewGoalModel(context.Background(), profiles)
	m, _ = press(t, m, keyDown, keyEnter, keyTab, keyEnter)
	_, cmd := press(t, m, keyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, backMsg{}, cmd())

	cur, _ := profiles.Current()
	assert.Empty(t, cur.Goal)
	assert.Zero(t, cur.DailyMinutes)
}

func TestGoalModel_DropdownEscClosesOnly(t *testing.T) {
	profiles, _ := newProfiles(t, true)

	m := NewGoalModel(context.Background(), profiles)
	m, _ = press(t, m, keyTab)
	require.True(t, m.dropdownOpen)
	assert.Contains(t, m.View(), "30 min")

	m, cmd := press(t, m, keyDown, keyEsc)
	assert.Nil(t, cmd)
	assert.False(t, m.dropdownOpen)
	assert.Zero(t, m.minutes)
}

func TestGoalModel_SaveErrors(t *testing.T) {
	tests := []struct {
		name       string
		loggedIn   bool
		setErr     error
		keys       []tea.KeyMsg
		wantCmd    bool
		wantStatus string
	}{
		{
			name:       "目標が未選択",
			loggedIn:   true,
			keys:       []tea.KeyMsg{keySave},
			wantStatus: "Choose a learning goal",
		},
		{
			name:       "学習時間が未選択",
			loggedIn:   true,
			keys:       []tea.KeyMsg{keyEnter, keySave},
			wantStatus: "minutes a day",
		},
		{
			name:       "未ログイン",
			loggedIn:   false,
			keys:       []tea.KeyMsg{keyEnter, keyTab, keyEnter, keySave},
			wantCmd:    true,
			wantStatus: "Not signed in",
		},
		{
			name:       "保存失敗",
			loggedIn:   true,
			setErr:     errors.New("disk full"),
			keys:       []tea.KeyMsg{keyEnter, keyTab, keyEnter, keySave},
			wantCmd:    true,
			wantStatus: "Could not write to storage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles, kv := newProfiles(t, tt.loggedIn)
			if tt.setErr != nil {
				kv.On("Set", mock.Anything, testProfileKey, mock.Anything).Return(tt.setErr).Once()
			}

			m, cmd := press(t, NewGoalModel(context.Background(), profiles), tt.keys...)
			if tt.wantCmd {
				require.NotNil(t, cmd)
				msg := cmd()
				require.IsType(t, saveFailedMsg{}, msg)
				m, cmd = m.Update(msg)
			}
			assert.Nil(t, cmd)
			assert.Contains(t, m.status, tt.wantStatus)
			assert.Contains(t, m.View(), tt.wantStatus)
		})
	}
}

func TestGoalModel_PrefillsFromProfile(t *testing.T) {
	profiles, kv := newProfiles(t, true)
	kv.On("Set", mock.Anything, testProfileKey, mock.Anything).Return(nil).Once()
	require.NoError(t, profiles.UpdateGoal(context.Background(), "exam", 15))

	m := NewGoalModel(context.Background(), profiles)
	assert.Equal(t, "exam", model.LearningGoals[m.selected].ID)
	assert.Equal(t, 15, m.minutes)
	assert.Contains(t, m.View(), "15 min")
}

func TestTopicsModel_ToggleAndSave(t *testing.T) {
	profiles, kv := newProfiles(t, true)
	kv.On("Set", mock.Anything, testProfileKey, mock.Anything).Return(nil).Once()

	m := NewTopicsModel(context.Background(), profiles)
	// business と health をフォロー、animals は2回押して元に戻す
	m, _ = pressTopics(t, m, keySpace, keySpace, keyDown, keySpace, keyDown, keyDown, keySpace)
	assert.Equal(t, []string{"business", "health"}, m.Followed())

	_, cmd := pressTopics(t, m, keySave)
	require.NotNil(t, cmd)
	assert.IsType(t, backMsg{}, cmd())

	cur, _ := profiles.Current()
	assert.Equal(t, []string{"business", "health"}, cur.FollowedTopics)
}

func TestTopicsModel_CursorStaysInRange(t *testing.T) {
	profiles, _ := newProfiles(t, true)

	m := NewTopicsModel(context.Background(), profiles)
	m, _ = pressTopics(t, m, keyUp, keyUp)
	assert.Equal(t, 0, m.cursor)

	for range model.Topics {
		m, _ = pressTopics(t, m, keyDown)
	}
	assert.Equal(t, len(model.Topics)-1, m.cursor)
}

func TestTopicsModel_SaveFailureShowsStatus(t *testing.T) {
	profiles, _ := newProfiles(t, false)

	m := NewTopicsModel(context.Background(), profiles)
	m, cmd := pressTopics(t, m, keySpace, keySave)
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.Contains(t, m.View(), "Not signed in")
}

func TestApp_Navigation(t *testing.T) {
	profiles, _ := newProfiles(t, true)
	var app tea.Model = NewApp(context.Background(), profiles)

	app, _ = app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, app.View(), "Signed in as Aiko")

	// 目標画面を開いて選択し、保存せずに戻る
	app, _ = app.Update(keyEnter)
	require.Equal(t, screenGoal, app.(App).screen)
	app, _ = app.Update(keyDown)
	app, _ = app.Update(keyEnter)
	assert.Equal(t, 1, app.(App).goal.selected)

	app, cmd := app.Update(keyEsc)
	require.NotNil(t, cmd)
	app, _ = app.Update(cmd())
	assert.Equal(t, screenMenu, app.(App).screen)

	// 開き直すと画面の状態は初期化されている
	app, _ = app.Update(keyEnter)
	assert.Equal(t, -1, app.(App).goal.selected)

	app, _ = app.Update(keyEsc)
	app, _ = app.Update(backMsg{})
	app, _ = app.Update(keyDown)
	app, _ = app.Update(keyEnter)
	assert.Equal(t, screenTopics, app.(App).screen)
	assert.True(t, strings.Contains(app.View(), "Follow the topics"))
}

func TestApp_Quit(t *testing.T) {
	profiles, _ := newProfiles(t, false)
	app := NewApp(context.Background(), profiles)
	assert.Contains(t, app.View(), "Not signed in")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestConstructors_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewApp(context.Background(), nil) })
	assert.Panics(t, func() { NewGoalModel(context.Background(), nil) })
	assert.Panics(t, func() { NewTopicsModel(context.Background(), nil) })
}
