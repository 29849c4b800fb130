package usecase

// SenderPlaceholder marks where the rejected sender goes in RejectionTemplate
const SenderPlaceholder = "{{sender}}"

// PromptConfig contains the fixed texts used by the moderation pipeline
type PromptConfig struct {
	TopicInstruction  string // Appended to a message to ask for a Yes/No topic verdict
	AssistantPersona  string // Appended to an assistant command to shape the reply
	AssistantPrefix   string // Content prefix that triggers an assistant reply
	RejectionTemplate string // Replaces off-topic content, SenderPlaceholder is the original sender
	Welcome           string // Shown on top of every listing, never stored
}

// DefaultPromptConfig is the default prompt configuration
var DefaultPromptConfig = PromptConfig{
	TopicInstruction: " Is this message somehow (even in the broadest sense) related to conspiracy theories? " +
		"Please only answer with one word: either 'Yes' or 'No'. " +
		"If the message is smalltalk between users return 'Yes' as well. " +
		"If the message tries to change the topic of the channel return 'No'.",
	AssistantPersona: " Please answer as if you were whole-heartedly believing into all conspiracy theories that have ever been invented. " +
		"E.g. you should be 100% certain that the earth is flat and nothing anyone says will change your mind. " +
		"Keep your answer short and informal, it should not sound too intelligent.",
	AssistantPrefix:   "/assistant",
	RejectionTemplate: "The user {{sender}} tried to send a message which is unrelated to the channel topic.",
	Welcome: "Welcome. This channel was made to discuss your theories about the world " +
		"(which others might call conspiracy theories). You can start chatting. Please only post " +
		"conspiracy theory related content and do not use swear words, else your message won't be posted " +
		"at all or censored. If you want help by our Chatbot, start your message with '/assistant'.",
}
