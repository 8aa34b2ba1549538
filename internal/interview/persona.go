package interview

var personas = map[Intensity]string{
	IntensityCalm:       "You are a warm, encouraging interviewer who puts candidates at ease. Ask questions in a friendly, conversational tone.",
	IntensityStrict:     "You are a professional, no-nonsense interviewer. Be direct and formal, but fair. Expect concise, well-structured answers.",
	IntensityAggressive: "You are a challenging interviewer who tests candidates under pressure. Be direct, occasionally interrupt with probing follow-ups, and maintain high expectations.",
}

// PersonaInstruction maps an intensity to the behavioral fragment injected
// into every prompt. Unrecognized values fall back to CALM.
func PersonaInstruction(intensity Intensity) string {
	if p, ok := personas[intensity]; ok {
		return p
	}
	return personas[IntensityCalm]
}
