package advisory

type visualRule struct {
	codes      []int
	bucket     Bucket
	dayIcon    string
	nightIcon  string
	dayLabel   string
	nightLabel string
}

func (r visualRule) matches(code int) bool {
	for _, c := range r.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Evaluated top to bottom, first match wins.
var visualRules = []visualRule{
	{codes: []int{0}, bucket: BucketClear, dayIcon: "☀️", nightIcon: "🌙", dayLabel: "Ясно", nightLabel: "Ясная ночь"},
	{codes: []int{1, 2}, bucket: BucketCloudy, dayIcon: "🌤️", nightIcon: "☁️", dayLabel: "Небольшая облачность", nightLabel: "Небольшая облачность"},
	{codes: []int{3}, bucket: BucketCloudy, dayIcon: "☁️", nightIcon: "☁️", dayLabel: "Пасмурно", nightLabel: "Пасмурно"},
	{codes: []int{45, 48}, bucket: BucketFog, dayIcon: "🌫️", nightIcon: "🌫️", dayLabel: "Туман", nightLabel: "Туман"},
	{codes: []int{51, 53, 55, 56, 57}, bucket: BucketDrizzle, dayIcon: "🌦️", nightIcon: "🌦️", dayLabel: "Морось", nightLabel: "Морось"},
	{codes: []int{61, 63, 65, 66, 67, 80, 81, 82}, bucket: BucketRain, dayIcon: "🌧️", nightIcon: "🌧️", dayLabel: "Дождь", nightLabel: "Дождь"},
	{codes: []int{71, 73, 75, 77, 85, 86}, bucket: BucketSnow, dayIcon: "❄️", nightIcon: "❄️", dayLabel: "Снег", nightLabel: "Снег"},
	{codes: []int{95, 96, 99}, bucket: BucketStorm, dayIcon: "⛈️", nightIcon: "⛈️", dayLabel: "Гроза", nightLabel: "Гроза"},
}

var fallbackVisual = Visual{Bucket: BucketClear, Icon: "🌡️", Label: "Погода"}

// Classify maps a condition code to its bucket, icon and label. Unknown codes
// fall back to the clear bucket with a thermometer icon.
func Classify(code int, isDay bool) Visual {
	rule, ok := lookupRule(code)
	if !ok {
		return fallbackVisual
	}
	if isDay {
		return Visual{Bucket: rule.bucket, Icon: rule.dayIcon, Label: rule.dayLabel}
	}
	return Visual{Bucket: rule.bucket, Icon: rule.nightIcon, Label: rule.nightLabel}
}

// BucketOf returns only the bucket for code, using the same table as Classify.
func BucketOf(code int) Bucket {
	rule, ok := lookupRule(code)
	if !ok {
		return fallbackVisual.Bucket
	}
	return rule.bucket
}

// Recognized reports whether code belongs to any documented code set.
func Recognized(code int) bool {
	_, ok := lookupRule(code)
	return ok
}

func lookupRule(code int) (visualRule, bool) {
	for _, rule := range visualRules {
		if rule.matches(code) {
			return rule, true
		}
	}
	return visualRule{}, false
}
