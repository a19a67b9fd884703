package models

type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
