package domain

// Channel identifies which intake produced a submission. The set is closed:
// each channel carries its own payload-construction rule downstream.
type Channel string

const (
	// ChannelForm is a web form submission.
	ChannelForm Channel = "form"
	// ChannelVoicemail is a phone voicemail submission.
	ChannelVoicemail Channel = "voicemail"
)
