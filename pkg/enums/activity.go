package enums

import "fmt"

// ActivityAction enumerates the auditable action kinds.
type ActivityAction string

const (
	ActivityActionCreated ActivityAction = "Created"
	ActivityActionUpdated ActivityAction = "Updated"
	ActivityActionDeleted ActivityAction = "Deleted"
	ActivityActionLogin   ActivityAction = "Login"
	ActivityActionLogout  ActivityAction = "Logout"
)

var validActivityActions = []ActivityAction{
	ActivityActionCreated,
	ActivityActionUpdated,
	ActivityActionDeleted,
	ActivityActionLogin,
	ActivityActionLogout,
}

// String implements fmt.Stringer.
func (a ActivityAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ActivityAction.
func (a ActivityAction) IsValid() bool {
	for _, candidate := range validActivityActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActivityAction converts raw input into an ActivityAction.
func ParseActivityAction(value string) (ActivityAction, error) {
	for _, candidate := range validActivityActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid activity action %q", value)
}

// ActivityStatus records whether the audited action succeeded.
type ActivityStatus string

const (
	ActivityStatusSuccessful ActivityStatus = "successful"
	ActivityStatusFailed     ActivityStatus = "failed"
)

// String implements fmt.Stringer.
func (s ActivityStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ActivityStatus.
func (s ActivityStatus) IsValid() bool {
	return s == ActivityStatusSuccessful || s == ActivityStatusFailed
}

// ParseActivityStatus converts raw input into an ActivityStatus.
func ParseActivityStatus(value string) (ActivityStatus, error) {
	status := ActivityStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid activity status %q", value)
	}
	return status, nil
}
