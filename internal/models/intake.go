package models

import "time"

type Subscriber struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	SubscribedAt time.Time `bson:"subscribed_at" json:"subscribed_at"`
	IPAddress    string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
}

type Feedback struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Company        string    `bson:"company,omitempty" json:"company,omitempty"`
	Category       string    `bson:"category" json:"category"`
	Rating         int       `bson:"rating" json:"rating"`
	Message        string    `bson:"message" json:"message"`
	WouldRecommend bool      `bson:"wouldRecommend" json:"wouldRecommend"`
	ContactBack    bool      `bson:"contactBack" json:"contactBack"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
	IPAddress      string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent      string    `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
}

type Contact struct {
	ID               string    `bson:"id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Email            string    `bson:"email" json:"email"`
	Company          string    `bson:"company,omitempty" json:"company,omitempty"`
	Phone            string    `bson:"phone,omitempty" json:"phone,omitempty"`
	ProjectType      string    `bson:"projectType" json:"projectType"`
	Budget           string    `bson:"budget" json:"budget"`
	Timeline         string    `bson:"timeline" json:"timeline"`
	Message          string    `bson:"message" json:"message"`
	PreferredContact string    `bson:"preferredContact" json:"preferredContact"`
	Urgency          string    `bson:"urgency" json:"urgency"`
	Timestamp        time.Time `bson:"timestamp" json:"timestamp"`
	IPAddress        string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	// Status starts at "new"; no endpoint advances it yet.
	Status string `bson:"status" json:"status"`
}

type StatusCheck struct {
	ID         string    `bson:"id" json:"id"`
	ClientName string    `bson:"client_name" json:"client_name"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}
