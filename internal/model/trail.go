package model

// Trail представляет туристическую тропу.
// Идентификатор задает клиент, он не генерируется базой. Правила binding
// проверяет gin при разборе тела запроса.
type Trail struct {
	ID          int      `db:"trail_id" json:"TrailID" dynamodbav:"trail_id"`
	Title       string   `db:"title" json:"Title" dynamodbav:"title" binding:"required"`
	Description *string  `db:"description" json:"Description" dynamodbav:"description"`
	Duration    *int     `db:"duration" json:"Duration" dynamodbav:"duration" binding:"omitempty,min=0"` // продолжительность в минутах
	Elevation   *float64 `db:"elevation" json:"Elevation" dynamodbav:"elevation"`                        // набор высоты
	RouteType   *string  `db:"route_type" json:"RouteType" dynamodbav:"route_type"`                      // тип маршрута: "loop", "point-to-point" и т.п.
	Length      *float64 `db:"length" json:"Length" dynamodbav:"length" binding:"omitempty,min=0"`       // длина в километрах
	LocationID  int      `db:"location_id" json:"LocationID" dynamodbav:"location_id"`
}
