package domain

import "time"

type Channel struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	AcademyID int32     `json:"academy_id"`
	BatchID   *int32    `json:"batch_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID        string    `json:"id"` // uuid
	ChannelID int32     `json:"channel_id"`
	SenderID  int32     `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "PENDING"
	FriendRequestStatusAccepted FriendRequestStatus = "ACCEPTED"
	FriendRequestStatusRejected FriendRequestStatus = "REJECTED"
)

type FriendRequest struct {
	ID         int32               `json:"id"`
	FromUserID int32               `json:"from_user_id"`
	ToUserID   int32               `json:"to_user_id"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
