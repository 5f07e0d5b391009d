package model

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// StatusFilterAll matches every status in appointment searches.
const StatusFilterAll = "all"

var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
