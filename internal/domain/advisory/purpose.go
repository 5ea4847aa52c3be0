package advisory

import "strings"

// Purpose is the stated reason for going out.
type Purpose string

const (
	PurposeWalk     Purpose = "walk"
	PurposeVacation Purpose = "vacation"
	PurposeWork     Purpose = "work"
	PurposeInterest Purpose = "interest"
)

var purposeLabels = map[Purpose]string{
	PurposeWalk:     "Для прогулки",
	PurposeVacation: "Планирую отпуск",
	PurposeWork:     "Добраться до работы",
	PurposeInterest: "Ради интереса",
}

// ParsePurpose normalizes raw input, defaulting to PurposeInterest when the
// value is absent or unknown.
func ParsePurpose(raw string) Purpose {
	p := Purpose(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := purposeLabels[p]; ok {
		return p
	}
	return PurposeInterest
}

// Label returns the display text for the purpose.
func (p Purpose) Label() string {
	if label, ok := purposeLabels[p]; ok {
		return label
	}
	return purposeLabels[PurposeInterest]
}
