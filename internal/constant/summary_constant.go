package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleSystem = "system"

	SummarySystemPromptV1 = "You are a helpful assistant that generates concise, informative summaries of educational videos. " +
		"Focus on the key concepts, examples, and takeaways. Format your summary with bullet points for main topics " +
		"followed by brief explanations. Keep your summary under 400 words."

	// SummaryUserPromptV1 takes the video title and the transcript text.
	SummaryUserPromptV1 = "Please summarize this transcript from a video titled \"%s\":\n\n%s"
)
