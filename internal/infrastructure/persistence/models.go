package persistence

import "time"

// Ingredient 食材
type Ingredient struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category      string   `gorm:"size:50;index" json:"category,omitempty"`
	Calories      *float64 `json:"calories,omitempty"`
	Protein       *float64 `json:"protein,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
	CommonUnit    string   `gorm:"size:20" json:"common_unit,omitempty"`
	ImageURL      string   `gorm:"size:255" json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recipe 食譜
type Recipe struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:200;not null;index"`
	Description  string `gorm:"type:text"`
	CuisineType  string `gorm:"size:50;index"`
	MealType     string `gorm:"size:50"`
	Difficulty   string `gorm:"column:difficulty_level;size:20"`
	PrepTime     int
	CookTime     int
	TotalTime    int `gorm:"index"`
	Servings     int `gorm:"default:1"`
	IsVegetarian bool
	IsVegan      bool
	IsGlutenFree bool
	IsDairyFree  bool
	ImageURL     string  `gorm:"size:255"`
	Rating       float64 `gorm:"default:0"`
	RatingCount  int
	ViewCount    int

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeIngredient 食譜中的食材，Position 保持原始順序
type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey"`
	RecipeID     uint `gorm:"not null;index"`
	IngredientID uint `gorm:"not null;index"`
	Ingredient   Ingredient
	Position     int
	Quantity     float64
	Unit         string `gorm:"size:20"`
	Preparation  string `gorm:"size:100"`
	IsOptional   bool

	CreatedAt time.Time
}

// UserPreference 使用者飲食偏好
type UserPreference struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"not null;uniqueIndex"`
	IsVegetarian bool
	IsVegan      bool
	IsGlutenFree bool
	IsDairyFree  bool
	MaxPrepTime  int
	SkillLevel   string `gorm:"size:20"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MealPlan 用餐紀錄，用於新鮮感與喜好計算
type MealPlan struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	RecipeID    uint      `gorm:"not null;index"`
	PlannedDate time.Time `gorm:"not null;index"`
	MealType    string    `gorm:"size:50"`
	IsCompleted bool
	CompletedAt *time.Time
	UserRating  *int
	UserNotes   string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DetectionFeedback 使用者修正紀錄，每組 (detected_label, correct_ingredient) 只有一筆
type DetectionFeedback struct {
	ID                  uint    `gorm:"primaryKey"`
	DetectedLabel       string  `gorm:"size:100;not null;uniqueIndex:idx_feedback_label_ingredient,priority:1"`
	AIMappedIngredient  *string `gorm:"size:100"`
	CorrectIngredient   string  `gorm:"size:100;not null;uniqueIndex:idx_feedback_label_ingredient,priority:2;index"`
	CorrectIngredientID *uint   `gorm:"index"`
	CorrectionCount     int     `gorm:"not null;default:1"`
	LearnedConfidence   float64 `gorm:"not null;default:0.5"`
	UserID              *uint   `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 固定資料表名稱
func (DetectionFeedback) TableName() string {
	return "detection_feedback"
}

func allModels() []any {
	return []any{
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&UserPreference{},
		&MealPlan{},
		&DetectionFeedback{},
	}
}
