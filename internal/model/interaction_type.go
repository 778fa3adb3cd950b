package model

type InteractionType uint8

const (
	InteractionTypeUnspecified InteractionType = iota
	InteractionTypeCall
	InteractionTypeEmail
	InteractionTypeMeeting
	InteractionTypeNote
)

var interactionTypeNames = []string{"", "Call", "Email", "Meeting", "Note"}

func ParseInteractionType(s string) (InteractionType, error) {
	return parseEnum[InteractionType](interactionTypeNames, "interaction type", s)
}

func (t InteractionType) String() string {
	return enumName(interactionTypeNames, "InteractionType", t)
}

func (t InteractionType) Validate() error {
	return validateEnum(interactionTypeNames, "interaction type", t)
}

func (t InteractionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *InteractionType) UnmarshalText(text []byte) error {
	v, err := ParseInteractionType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
