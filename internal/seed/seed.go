package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"artcanvas/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumPaintings int
	ShouldClean  bool
}

// Seeder orchestrates bulk data generation for development databases.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	r       *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		r:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll truncates every domain table. Join tables go first so foreign
// keys never dangle mid-cleanup.
func (s *Seeder) ClearAll() error {
	log.Println("Cleaning database...")
	tables := []any{
		&models.BoardPainting{},
		&models.SavedPainting{},
		&models.Like{},
		&models.Comment{},
		&models.Board{},
		&models.Painting{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clear table %T: %w", table, err)
		}
	}
	return nil
}

// Run populates the database with users, paintings, comments, likes, saves
// and boards in proportions that look like a small but active community.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPaintings <= 0 {
		opts.NumPaintings = 100
	}

	log.Printf("Seeding %d users...", opts.NumUsers)
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	log.Printf("Seeding %d paintings...", opts.NumPaintings)
	paintings := make([]*models.Painting, 0, opts.NumPaintings)
	for i := 0; i < opts.NumPaintings; i++ {
		artist := users[s.r.Intn(len(users))]
		painting, err := s.factory.CreatePainting(artist)
		if err != nil {
			return err
		}
		paintings = append(paintings, painting)
	}

	log.Println("Seeding engagement...")
	for _, painting := range paintings {
		// a few comments per painting
		for i := 0; i < s.r.Intn(4); i++ {
			commenter := users[s.r.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, painting); err != nil {
				return err
			}
		}

		// likes and saves from a random subset of users
		for _, user := range users {
			if s.r.Intn(100) < 25 {
				like := &models.Like{UserID: user.ID, PaintingID: painting.ID}
				if err := s.db.Create(like).Error; err != nil {
					return fmt.Errorf("create like: %w", err)
				}
			}
			if s.r.Intn(100) < 10 {
				saved := &models.SavedPainting{UserID: user.ID, PaintingID: painting.ID}
				if err := s.db.Create(saved).Error; err != nil {
					return fmt.Errorf("create save: %w", err)
				}
			}
		}
	}

	log.Println("Seeding boards...")
	for _, user := range users {
		for i := 0; i < s.r.Intn(3); i++ {
			board, err := s.factory.CreateBoard(user)
			if err != nil {
				return err
			}
			// pin a handful of paintings, positions in insertion order
			count := s.r.Intn(6)
			seen := map[uint]bool{}
			position := 0
			for j := 0; j < count; j++ {
				painting := paintings[s.r.Intn(len(paintings))]
				if seen[painting.ID] {
					continue
				}
				seen[painting.ID] = true
				bp := &models.BoardPainting{
					BoardID:    board.ID,
					PaintingID: painting.ID,
					Position:   position,
				}
				if err := s.db.Create(bp).Error; err != nil {
					return fmt.Errorf("create board painting: %w", err)
				}
				position++
			}
		}
	}

	log.Printf("Seeded %d users and %d paintings", len(users), len(paintings))
	return nil
}
