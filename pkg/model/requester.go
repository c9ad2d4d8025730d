package model

// Requester is a member account that can hold reservations. Accounts are
// owned by the surrounding application; this service only reads them.
type Requester struct {
	ID    string `json:"id" bson:"_id,omitempty"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	CPF   string `json:"cpf" bson:"cpf"`
}
