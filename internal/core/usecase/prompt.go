package usecase

import "fmt"

const oncologySystemPrompt = "You are an expert oncology assistant."

func buildStructuringPrompt(query string) string {
	return fmt.Sprintf(`Analyze this medical question and break it down into structured components. Return your analysis as a JSON object with the following fields:
- main_topic: The primary medical topic or condition being asked about
- explanation_level: One of ["basic", "standard", "detailed", "child-friendly"]
- target_audience: One of ["general", "patient", "medical_professional", "child"]
- filters: A dictionary of any specific requirements (e.g. {"simplified_language": true})

Question to analyze: %s

Respond ONLY with the JSON object, no other text. Example format:
{
    "main_topic": "cancer diagnosis",
    "explanation_level": "standard",
    "target_audience": "general",
    "filters": {}
}`, query)
}

func buildJudgePrompt(query, answer string) string {
	return fmt.Sprintf(`You are a medical QA evaluation system. Decide whether the candidate answer below actually answers the user's question.

Respond ONLY with a JSON object, no other text:
{"judgment": "relevant" or "irrelevant", "confidence": <number from 0 to 1>, "reason": "<short rationale>"}

Question: %s

Candidate answer: %s`, query, answer)
}
