package model

// LeadStatus is a stage of the sales funnel.
type LeadStatus uint8

const (
	LeadStatusUnspecified LeadStatus = iota
	LeadStatusNew
	LeadStatusContacted
	LeadStatusFollowUp
	LeadStatusConverted
	LeadStatusDropped
)

var leadStatusNames = []string{"", "New", "Contacted", "Follow-Up", "Converted", "Dropped"}

// LeadStatuses lists the funnel stages in board order.
func LeadStatuses() []LeadStatus {
	return []LeadStatus{
		LeadStatusNew,
		LeadStatusContacted,
		LeadStatusFollowUp,
		LeadStatusConverted,
		LeadStatusDropped,
	}
}

func ParseLeadStatus(s string) (LeadStatus, error) {
	return parseEnum[LeadStatus](leadStatusNames, "lead status", s)
}

// IsClosed reports whether the lead left the funnel.
func (s LeadStatus) IsClosed() bool {
	return s == LeadStatusConverted || s == LeadStatusDropped
}

func (s LeadStatus) String() string {
	return enumName(leadStatusNames, "LeadStatus", s)
}

func (s LeadStatus) Validate() error {
	return validateEnum(leadStatusNames, "lead status", s)
}

func (s LeadStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *LeadStatus) UnmarshalText(text []byte) error {
	v, err := ParseLeadStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
