package trainer

import "fmt"

func questionPrompt(category string) string {
	return fmt.Sprintf(`You are an expert exam creator for the Applied Information Technology Engineer Examination (AP) in Japan.
Create a descriptive/essay-style question (午後試験 記述式) regarding '%s'.

Requirements:
1. The question should be challenging and realistic, similar to past exam questions.
2. Provide a brief scenario or problem description (200-400 characters).
3. Ask a specific question that requires a descriptive answer.
4. Output ONLY the question content.
5. Language: Japanese.
`, category)
}

func gradingPrompt(question, theme, answer string) string {
	return fmt.Sprintf(`You are an expert grader for the Applied Information Technology Engineer Examination (AP).

Theme: %s
Question:
%s

User's Answer:
%s

Task:
1. Evaluate the user's answer based on the theme.
2. Determine if it is Correct (Pass) or Incorrect (Fail).
3. Provide a score out of 100.
4. Provide a Model Answer (模範解答).
5. Provide specific feedback on what keywords were missing or how to improve the logic.

Output Format:
【判定】: 合格 / 不合格
【スコア】: X / 100
【模範解答】: ...
【解説・アドバイス】: ...
`, theme, question, answer)
}
