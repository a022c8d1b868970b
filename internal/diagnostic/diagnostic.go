package diagnostic

import (
	"github.com/MrJamesThe3rd/fixnet/internal/keyword"
)

// Category is the diagnostic label shown to the customer.
type Category string

const (
	CategoryScreen   Category = "Проблемы с экраном"
	CategoryBattery  Category = "Проблемы с батареей"
	CategoryAudio    Category = "Проблемы со звуком"
	CategoryWater    Category = "Повреждение жидкостью"
	CategorySoftware Category = "Программные проблемы"
	CategoryGeneral  Category = "Общая диагностика"
)

// Result is the outcome of classifying a problem description.
type Result struct {
	Category       Category
	Description    string
	Recommendation string
}

// rules are evaluated top to bottom and the first match wins, so a text
// mentioning both a broken screen and a battery is a screen problem.
// Order: screen, battery, audio, water, software.
var rules = []keyword.Rule[Result]{
	{
		Triggers: []string{"экран", "дисплей", "разбит", "треснул", "не работает экран", "черный экран"},
		Result: Result{
			Category:       CategoryScreen,
			Description:    "Похоже, проблема связана с дисплеем или сенсором",
			Recommendation: "Необходима замена экрана или диагностика сенсорного модуля",
		},
	},
	{
		Triggers: []string{"батарея", "аккумулятор", "быстро разряжается", "не заряжается", "зарядка"},
		Result: Result{
			Category:       CategoryBattery,
			Description:    "Проблема связана с аккумулятором или зарядкой",
			Recommendation: "Диагностика системы питания, возможна замена батареи",
		},
	},
	{
		Triggers: []string{"звук", "динамик", "микрофон", "не слышно", "тихо"},
		Result: Result{
			Category:       CategoryAudio,
			Description:    "Неисправность аудиосистемы",
			Recommendation: "Проверка динамиков, микрофона или аудиоконтроллера",
		},
	},
	{
		Triggers: []string{"вода", "намочил", "упал в воду", "влага"},
		Result: Result{
			Category:       CategoryWater,
			Description:    "Устройство подверглось воздействию жидкости",
			Recommendation: "Срочная диагностика и очистка от влаги",
		},
	},
	{
		Triggers: []string{"программа", "приложение", "тормозит", "зависает", "не включается"},
		Result: Result{
			Category:       CategorySoftware,
			Description:    "Возможны проблемы с ПО или системой",
			Recommendation: "Диагностика ПО, возможна переустановка системы",
		},
	},
}

var general = Result{
	Category:       CategoryGeneral,
	Description:    "Требуется детальная диагностика для точного определения проблемы",
	Recommendation: "Принесите устройство для профессиональной диагностики",
}

// Classify maps a free-text problem description to a diagnostic result.
// It is total: text that matches no rule gets the general diagnostic result.
func Classify(problem string) Result {
	return keyword.First(problem, rules, general)
}

// Categories returns every category Classify can produce, in priority order.
func Categories() []Category {
	out := make([]Category, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.Result.Category)
	}

	return append(out, general.Category)
}
