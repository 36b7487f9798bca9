package models

import "gorm.io/gorm"

// Book is an item of the book shop catalog
type Book struct {
	gorm.Model
	BookImage      string  `json:"bookImage" gorm:"not null"`
	BookName       string  `json:"bookName" gorm:"not null"`
	ExtraAdding    string  `json:"extraAdding"`
	BookAuthor     string  `json:"bookAuthor" gorm:"not null"`
	BookPrice      float64 `json:"bookPrice" gorm:"not null"`
	AvailableStock int     `json:"availableStock" gorm:"not null;default:0"`
	Category       string  `json:"category" gorm:"not null;index"`
}

func (Book) TableName() string {
	return "books"
}
