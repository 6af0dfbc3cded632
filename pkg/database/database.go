package database

import (
	"fmt"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedCatalog(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Course{},
		&model.Module{},
		&model.Lesson{},
		&model.Resource{},
		&model.Quiz{},
		&model.Question{},
		&model.Choice{},
		&model.Enrollment{},
		&model.LessonCompletion{},
		&model.QuizAttempt{},
		&model.ContactMessage{},
	)
}

// SeedCatalog 课程表为空时写入示例课程，保证新环境有可浏览的目录
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, seed := range sampleCourses() {
		if err := db.Create(seed).Error; err != nil {
			return err
		}
	}
	log.Println("Seeded sample course catalog")
	return nil
}

func sampleCourses() []*model.Course {
	q := func(text string, choices ...model.Choice) model.Question {
		return model.Question{Text: text, Choices: choices}
	}
	c := func(text string, correct bool) model.Choice {
		return model.Choice{Text: text, IsCorrect: correct}
	}

	fullstack := &model.Course{
		Slug:      "full-stack-web-dev",
		Title:     "Full Stack Web Development",
		Category:  "Web Dev",
		ShortDesc: "From HTML/CSS/JS to backend frameworks, databases, and deployment.",
		IsActive:  true,
		Modules: []model.Module{
			{
				Index: 1,
				Title: "Frontend Fundamentals",
				Intro: "HTML, CSS, JavaScript basics and modern tooling.",
				Lessons: []model.Lesson{
					{
						Index:    1,
						Title:    "HTML & Semantic Structure",
						VideoURL: "https://www.youtube.com/watch?v=UB1O30fR-EE",
						Quiz: &model.Quiz{
							Title:    "HTML Quiz",
							IsActive: true,
							PassMark: 60,
							Questions: []model.Question{
								q("Which tag best represents the main content of a page?",
									c("<div>", false), c("<main>", true), c("<section>", false), c("<span>", false)),
								q("Which tag is best for a navigation region?",
									c("<nav>", true), c("<aside>", false), c("<article>", false), c("<ul>", false)),
							},
						},
					},
					{
						Index:    2,
						Title:    "CSS Layout Essentials",
						VideoURL: "https://www.youtube.com/watch?v=1Rs2ND1ryYc",
						Quiz: &model.Quiz{
							Title:    "CSS Quiz",
							IsActive: true,
							PassMark: 60,
							Questions: []model.Question{
								q("Which CSS module provides two-dimensional layout?",
									c("Flexbox", false), c("Grid", true), c("Floats", false), c("Positioning", false)),
								q("Which property sets a flex container?",
									c("display: flex", true), c("position: flex", false), c("flex: container", false), c("layout: flex", false)),
							},
						},
					},
					{
						Index:    3,
						Title:    "JavaScript Fundamentals",
						VideoURL: "https://www.youtube.com/watch?v=PkZNo7MFNFg",
						Quiz: &model.Quiz{
							Title:    "JavaScript Quiz",
							IsActive: true,
							PassMark: 60,
							Questions: []model.Question{
								q("Which keyword declares a block-scoped variable?",
									c("var", false), c("let", true), c("def", false), c("static", false)),
								q("Which method converts a JSON string to an object?",
									c("JSON.parse()", true), c("JSON.encode()", false), c("Object.fromJSON()", false), c("String.toJSON()", false)),
							},
						},
					},
				},
			},
			{
				Index: 2,
				Title: "Backend Foundations",
				Intro: "Routing, views, forms, and relational data modeling.",
				Lessons: []model.Lesson{
					{
						Index:    1,
						Title:    "Project Structure & Routing",
						VideoURL: "https://www.youtube.com/watch?v=F5mRW0jo-U4",
					},
					{
						Index: 2,
						Title: "Databases & Migrations",
					},
				},
			},
		},
	}

	data := &model.Course{
		Slug:      "data-analysis-basics",
		Title:     "Data Analysis Basics",
		Category:  "Data",
		ShortDesc: "Spreadsheets to SQL: cleaning, aggregating, and visualizing data.",
		IsActive:  true,
		Modules: []model.Module{
			{
				Index: 1,
				Title: "Working with Tabular Data",
				Intro: "Rows, columns, and the questions they can answer.",
				Lessons: []model.Lesson{
					{
						Index: 1,
						Title: "Filtering and Sorting",
						Quiz: &model.Quiz{
							Title:    "Tabular Data Quiz",
							IsActive: true,
							PassMark: 70,
							Questions: []model.Question{
								q("Which SQL clause restricts returned rows?",
									c("ORDER BY", false), c("WHERE", true), c("GROUP BY", false), c("SELECT", false)),
							},
						},
					},
				},
			},
		},
	}

	return []*model.Course{fullstack, data}
}
