package model

import "time"

// Slide — медиаслайд маркетинговой секции сайта.
// Создаётся загрузкой файла, удаляется по id; update-in-place отсутствует.
type Slide struct {
	// ID — UUID слайда
	ID string
	// Section — тег секции сайта (hero, services, testimonials)
	Section string
	// MediaURL — публичный URL медиафайла
	MediaURL string
	// MediaType — MIME-тип медиафайла
	MediaType string
	// CreatedAt — время создания
	CreatedAt time.Time
}

// Post — публикация новостного раздела.
type Post struct {
	// ID — UUID публикации
	ID string
	// Title — заголовок
	Title string
	// Excerpt — краткое содержание
	Excerpt string
	// Category — категория (например, "CAC News", "Business Tips")
	Category string
	// MediaURL — публичный URL медиафайла (опционально)
	MediaURL *string
	// MediaType — MIME-тип медиафайла (опционально)
	MediaType *string
	// CreatedAt — время публикации
	CreatedAt time.Time
}
