package domain

// Component type names as they appear on selections and in fixtures.
const (
	TypeInputPort  ComponentType = "INPUT_PORT"
	TypeOutputPort ComponentType = "OUTPUT_PORT"
	TypeProcessor  ComponentType = "PROCESSOR"
	TypeFunnel     ComponentType = "FUNNEL"
	TypeLabel      ComponentType = "LABEL"
)

// NoticeHeader is the header of the blocking notice shown for rejected input.
const NoticeHeader = "Port Configuration"
