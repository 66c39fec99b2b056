package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"bookcatalog/internal/config"
	"bookcatalog/internal/db"
	"bookcatalog/internal/model"
	"bookcatalog/internal/repository"
	"bookcatalog/pkg/logger"
)

var (
	genres = []string{
		"Fiction", "Non-Fiction", "Mystery", "Science Fiction", "Fantasy",
		"Romance", "Thriller", "Horror", "Biography", "History", "Poetry",
	}
	firstNames = []string{
		"Frank", "Ursula", "Isaac", "Octavia", "Stanislaw", "Margaret",
		"Ray", "Arkady", "Doris", "Kurt",
	}
	lastNames = []string{
		"Herbert", "Le Guin", "Asimov", "Butler", "Lem", "Atwood",
		"Bradbury", "Strugatsky", "Lessing", "Vonnegut",
	}
	titleWords = []string{
		"Shadow", "Garden", "Machine", "River", "Empire", "Winter",
		"Signal", "Harvest", "Mirror", "Orbit", "Archive", "Tide",
	}
	reviewers = []string{
		"Alice", "Bob", "Carol", "Dmytro", "Elena", "Farid", "Grace", "Hana",
	}
	comments = []string{
		"Could not put it down.",
		"Slow start, strong finish.",
		"Not what I expected, in a good way.",
		"The middle third drags.",
		"Will read again.",
		"",
	}
)

func randomBook(rng *rand.Rand) model.Book {
	published := time.Date(
		1950+rng.Intn(75), time.Month(1+rng.Intn(12)), 1+rng.Intn(28),
		0, 0, 0, 0, time.UTC,
	)

	return model.Book{
		Title: fmt.Sprintf("The %s of the %s",
			titleWords[rng.Intn(len(titleWords))],
			titleWords[rng.Intn(len(titleWords))],
		),
		Author: fmt.Sprintf("%s %s",
			firstNames[rng.Intn(len(firstNames))],
			lastNames[rng.Intn(len(lastNames))],
		),
		Genre:       genres[rng.Intn(len(genres))],
		Description: "A generated catalog entry for local development.",
		PublishedAt: &published,
	}
}

func randomReview(rng *rand.Rand, book model.Book) model.Review {
	reviewed := time.Now().AddDate(0, 0, -rng.Intn(365))

	return model.Review{
		BookID:     book.ID,
		Reviewer:   reviewers[rng.Intn(len(reviewers))],
		Rating:     1 + rng.Intn(10),
		Comment:    comments[rng.Intn(len(comments))],
		ReviewedAt: &reviewed,
	}
}

func main() {
	bookCount := flag.Int("books", 100, "number of books to generate")
	reviewCount := flag.Int("reviews", 1000, "number of reviews to generate")
	flag.Parse()

	logger.Init()
	defer logger.Log.Sync()

	cfg := config.Load()

	database, err := db.ConnectWithRetry(cfg)
	if err != nil {
		logger.Sugar.Fatalf("could not connect to db: %v", err)
	}

	if err := database.AutoMigrate(&model.Book{}, &model.Review{}); err != nil {
		logger.Sugar.Fatalf("migration failed: %v", err)
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	bookRepo := repository.NewGormBookRepository(database)
	reviewRepo := repository.NewGormReviewRepository(database)

	books := make([]model.Book, 0, *bookCount)
	for i := 0; i < *bookCount; i++ {
		book := randomBook(rng)
		if err := bookRepo.Create(ctx, &book); err != nil {
			logger.Sugar.Fatalf("failed to insert book: %v", err)
		}
		books = append(books, book)
	}
	logger.Sugar.Infow("seeded books", "count", len(books))

	for i := 0; i < *reviewCount; i++ {
		review := randomReview(rng, books[rng.Intn(len(books))])
		if err := reviewRepo.Create(ctx, &review); err != nil {
			logger.Sugar.Fatalf("failed to insert review: %v", err)
		}
	}
	logger.Sugar.Infow("seeded reviews", "count", *reviewCount)
}
