package webutil

import (
	"log"
	"reflect"
	"strings"

	"go_4_vocab_learn/internal/model"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"id":               "ID",
	"name":             "名前",
	"email":            "メールアドレス",
	"level":            "レベル",
	"progress":         "学習状況",
	"completedLessons": "完了したレッスン数",
	"totalLessons":     "レッスン総数",
	"streak":           "連続日数",
	"goal":             "学習目標",
	"dailyMinutes":     "1日の学習時間",
	"topics":           "トピック",
	"time":             "通知時刻",
	"hour":             "時",
	"minute":           "分",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	// dive したスライス要素は "topics[0]" のような名前になる
	if i := strings.IndexByte(fe.Field(), '['); i > 0 {
		if name, ok := fieldNameTranslations[fe.Field()[:i]]; ok {
			return name
		}
	}
	return fe.Field()
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 固定の選択肢に対するカスタムタグ
	Validator.RegisterValidation("proficiency", func(fl validator.FieldLevel) bool {
		return model.ProficiencyLevel(fl.Field().String()).Valid()
	})
	Validator.RegisterValidation("goal", func(fl validator.FieldLevel) bool {
		return model.IsGoal(fl.Field().String())
	})
	Validator.RegisterValidation("topic", func(fl validator.FieldLevel) bool {
		return model.IsTopic(fl.Field().String())
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// {0} にフィールドの日本語名を入れるメッセージを登録するヘルパー
	registerTranslation := func(tag string, msg string, withParam bool) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			var t string
			if withParam {
				t, _ = ut.T(tag, translatedField(fe), fe.Param())
			} else {
				t, _ = ut.T(tag, translatedField(fe))
			}
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。", false)
	registerTranslation("email", "{0}は有効なメールアドレス形式ではありません。", false)
	registerTranslation("min", "{0}は{1}文字以上で入力してください。", true)
	registerTranslation("max", "{0}は{1}文字以下で入力してください。", true)
	registerTranslation("gte", "{0}は{1}以上で入力してください。", true)
	registerTranslation("lte", "{0}は{1}以下で入力してください。", true)
	registerTranslation("oneof", "{0}は[{1}]のいずれかを指定してください。", true)
	registerTranslation("proficiency", "{0}はbeginner, Elementary, Intermediate, Upper-Intermediate, Advanced, Proficientのいずれかを指定してください。", false)
	registerTranslation("goal", "{0}に指定された値は選択肢にありません。", false)
	registerTranslation("topic", "{0}に指定された値は選択肢にありません。", false)
}
