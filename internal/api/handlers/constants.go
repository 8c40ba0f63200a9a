package handlers

const (
	// Query parameters shared by song endpoints
	queryTranspose = "transpose"
	queryKey       = "key"

	// MIDI preview
	contentTypeMIDI = "audio/midi"
	maxMIDITempo    = 300
)
