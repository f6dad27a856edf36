package model

// Location представляет точку на карте, к которой привязаны тропы.
// Сервис только читает эту таблицу: используется лишь идентификатор (и название для бота).
type Location struct {
	ID        int     `db:"id" json:"LocationID" dynamodbav:"id"`
	Name      string  `db:"name" json:"Name" dynamodbav:"name"`
	Region    string  `db:"region" json:"Region" dynamodbav:"region"` // регион или район, где находится локация
	Latitude  float64 `db:"latitude" json:"Latitude" dynamodbav:"latitude"`
	Longitude float64 `db:"longitude" json:"Longitude" dynamodbav:"longitude"`
}
