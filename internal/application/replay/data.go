package replay

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	U  bool `json:"u,omitempty"`  // Up
	D  bool `json:"d,omitempty"`  // Down
	J  bool `json:"j,omitempty"`  // Jump
	JP bool `json:"jp,omitempty"` // JumpPressed
}

// ReplayData contains all data needed to replay a session.
// The simulation is deterministic, so inputs and the stage are enough.
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// Version is the replay format written by Recorder
const Version = "1.0"
