package normalize

import "regexp"

const negatedTarget = "no " + Placeholder

var (
	// "-SOB" with whitespace before the dash, and trailing "SOB-"
	leadingDashRule  = regexp.MustCompile(`(\s)-\s*` + Placeholder)
	trailingDashRule = regexp.MustCompile(Placeholder + `-([\s.,;:!?)\]]|$)`)
)

func rewriteDash(s string) string {
	s = leadingDashRule.ReplaceAllString(s, "${1}"+negatedTarget)
	return trailingDashRule.ReplaceAllString(s, negatedTarget+"${1}")
}

const (
	word       = `\b[a-z]+\b\s*`
	words      = `(?:` + word + `)+?`
	wordsOrNot = `(?:` + word + `)*?`
)

// Future or conditional onset of the target means it is not present now.
// Each rule replaces its whole match with "no <target>".
var futureRules = []*regexp.Regexp{
	// "take Tylenol for fever"
	regexp.MustCompile(`(?i)\b(?:give|take|prescribe|rx)\s+` + words +
		`\b(?:for|in\s+case\s+of|if|when)\s+` + Placeholder + `\b`),

	// "if fever develops", "should a rash appear"
	regexp.MustCompile(`(?i)\b(?:if|should)\s+` + wordsOrNot + Placeholder + `\s+(?:should\s+)?` +
		`\b(?:appear|arise|begin|crop\s+up|commence|come\s+to\s+light|come\s+into\s+being|` +
		`develop|emanate|emerge|ensue|exhibit|happen|occur|originate|result|set\s+in|start|take\s+place)[a-z]*`),

	// "if the patient develops shortness of breath"
	regexp.MustCompile(`(?i)\b(?:if|should)\s+` + wordsOrNot +
		`\b(?:commences?|develops?|exhibits?|happens?|presents?|results?(?:\s+in)?|sets?\s+in|starts?|takes?\s+place)\s+` +
		wordsOrNot + Placeholder + `\b`),

	// "in case of fever", "should there be chills", "watch out for bleeding"
	regexp.MustCompile(`(?i)\b(?:in\s+case\s+of|should\s+there\s+be|should|(?:look|watch)\s+(?:out\s+)?for)\s+` +
		wordsOrNot + Placeholder + `\b`),
}

func rewriteFutureOccurrence(s string) string {
	for _, rule := range futureRules {
		s = rule.ReplaceAllLiteralString(s, " "+negatedTarget)
	}
	return s
}
