package session

// Choice is an answer to a confirmation prompt.
type Choice int

const (
	ChoiceCancel Choice = iota
	ChoiceSave
	ChoiceDiscard
)

func (c Choice) String() string {
	switch c {
	case ChoiceSave:
		return "Save"
	case ChoiceDiscard:
		return "Discard"
	}
	return "Cancel"
}

// ConfirmRequest describes a modal prompt with a fixed set of answers.
type ConfirmRequest struct {
	Title   string
	Message string
	Options []Choice
}

// PickMode selects what a file picker is for.
type PickMode int

const (
	PickOpen PickMode = iota
	PickSave
)

// PickerConfig configures a file picker.
type PickerConfig struct {
	Mode        PickMode
	StartPath   string // directory the picker starts in
	DefaultName string // suggested file name in save mode
}

// Presenter is the modal surface the session drives. Confirm and PickFile
// may answer synchronously or later; either way done is called exactly once
// unless the prompt is abandoned.
type Presenter interface {
	Confirm(req ConfirmRequest, done func(Choice))
	PickFile(cfg PickerConfig, done func(path string, ok bool))
	Notify(err error)
	SetStatus(text string)
}

// TabStrip mirrors the buffer registry's tab order.
type TabStrip interface {
	AddTab(label string)
	RemoveTab(index int)
	SelectTab(index int)
	RelabelTab(index int, label string)
}

type noTabs struct{}

func (noTabs) AddTab(string)          {}
func (noTabs) RemoveTab(int)          {}
func (noTabs) SelectTab(int)          {}
func (noTabs) RelabelTab(int, string) {}
