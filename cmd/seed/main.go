package main

import (
	"flag"
	"log"
	"time"

	"creator-pulse/internal/database"
	"creator-pulse/internal/models"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

// Seeds the database with a demo creator and enough post history to
// exercise the analytics endpoints. In a production system data arrives
// through the platform import pipeline instead.

func main() {
	var handle = flag.String("handle", "demo.creator", "Handle for the demo creator")
	flag.Parse()

	log.Printf("🌱 Creator Pulse Database Seeder")
	log.Printf("================================")
	log.Printf("Demo creator: %s", *handle)

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	creator := seedCreator(*handle)
	seedAccounts(creator)
	seedPosts(creator)

	log.Println("✅ Database seeding completed")
	log.Println("")
	log.Println("🧪 Quick Test Commands:")
	log.Println("=======================")
	log.Println("curl http://localhost:8080/health")
	log.Printf("curl -H \"Authorization: Bearer $TOKEN\" http://localhost:8080/api/analytics/creators/%s/patterns", creator.ID)
	log.Printf("curl -H \"Authorization: Bearer $TOKEN\" http://localhost:8080/api/analytics/creators/%s/recommendations", creator.ID)
}

func seedCreator(handle string) *models.Creator {
	var creator models.Creator
	err := database.DB.Where("handle = ?", handle).First(&creator).Error
	if err == nil {
		log.Printf("👤 Creator %s already exists, reusing", handle)
		return &creator
	}

	creator = models.Creator{
		Handle:      handle,
		DisplayName: "Demo Creator",
		Email:       handle + "@example.com",
		Bio:         "Seeded account for local development",
		IsActive:    true,
		LastSeenAt:  time.Now(),
	}
	if err := database.DB.Create(&creator).Error; err != nil {
		log.Fatal("Failed to create demo creator:", err)
	}

	log.Printf("👤 Created demo creator %s (%s)", handle, creator.ID)
	return &creator
}

func seedAccounts(creator *models.Creator) {
	platforms := []struct {
		platform models.Platform
		username string
	}{
		{models.PlatformYouTube, "demo-channel"},
		{models.PlatformInstagram, "demo.creator"},
		{models.PlatformBlog, "blog.demo-creator.dev"},
	}

	for _, p := range platforms {
		var count int64
		database.DB.Model(&models.PlatformAccount{}).
			Where("creator_id = ? AND platform = ?", creator.ID, p.platform).
			Count(&count)
		if count > 0 {
			continue
		}

		account := models.PlatformAccount{
			CreatorID:   creator.ID,
			Platform:    p.platform,
			Username:    p.username,
			IsConnected: true,
		}
		if err := database.DB.Create(&account).Error; err != nil {
			log.Printf("⚠️ Failed to create %s account: %v", p.platform, err)
			continue
		}
		log.Printf("🔗 Connected %s account %s", p.platform, p.username)
	}
}

// seedPost describes one demo post plus its engagement snapshot
type seedPost struct {
	platform    models.Platform
	title       string
	body        string
	contentType string
	tags        []string
	hasMedia    bool
	daysAgo     int
	hour        int
	views       int
	likes       int
	comments    int
	shares      int
}

func seedPosts(creator *models.Creator) {
	var existing int64
	database.DB.Model(&models.Post{}).Where("creator_id = ?", creator.ID).Count(&existing)
	if existing > 0 {
		log.Printf("📄 Creator already has %d posts, skipping post seed", existing)
		return
	}

	longBody := ""
	for i := 0; i < 60; i++ {
		longBody += "Once I started treating every upload like a story with a beginning and an end, my retention changed completely. "
	}

	posts := []seedPost{
		{models.PlatformYouTube, "How I Edit Videos - My Full Workflow", longBody, "video", []string{"editing", "tutorial", "workflow"}, true, 45, 18, 42000, 3100, 410, 520},
		{models.PlatformYouTube, "My Story: From Zero to 100k Subscribers", longBody, "video", []string{"journey", "story", "growth"}, true, 38, 19, 61000, 5400, 780, 940},
		{models.PlatformYouTube, "Camera Gear: What Actually Matters", "A short rundown of the gear I use daily.", "video", []string{"gear", "camera"}, true, 30, 12, 18000, 900, 120, 95},
		{models.PlatformYouTube, "Try This Before Your Next Upload", "Subscribe and comment below with your results!", "video", []string{"tips", "growth"}, true, 21, 18, 35000, 2800, 650, 430},
		{models.PlatformInstagram, "Morning Routine: 5 Habits That Changed My Content", "Save this post and try one habit this week!", "social_media", []string{"habits", "routine", "motivation"}, true, 40, 8, 22000, 2600, 310, 480},
		{models.PlatformInstagram, "Behind the Scenes | Studio Tour", "A quick look at where everything gets made.", "social_media", []string{"studio", "bts"}, true, 33, 13, 9500, 700, 85, 60},
		{models.PlatformInstagram, "You Can Do This Too - My Best Advice", "Believe in the process. Dream big, start small.", "social_media", []string{"motivation", "advice"}, false, 25, 19, 31000, 4100, 520, 760},
		{models.PlatformInstagram, "Quick Tip: Better Lighting in 30 Seconds", "Window light beats any ring light. Try it.", "social_media", []string{"tips", "lighting"}, true, 15, 12, 14000, 1300, 140, 210},
		{models.PlatformBlog, "Content Strategy: A Complete Guide for 2026", longBody, "blog", []string{"strategy", "guide", "planning"}, false, 42, 9, 8200, 260, 95, 140},
		{models.PlatformBlog, "Why I Almost Quit - And What Kept Me Going", longBody, "blog", []string{"story", "journey", "burnout"}, false, 28, 20, 12500, 610, 230, 340},
		{models.PlatformBlog, "Tools I Use Every Day", "A short list of the tools behind the channel.", "blog", []string{"tools", "gear"}, false, 18, 10, 3100, 90, 22, 18},
		{models.PlatformBlog, "Join My Newsletter Challenge - Sign Up Today", "Click through and subscribe to take part!", "blog", []string{"newsletter", "challenge"}, false, 10, 17, 5400, 310, 120, 190},
	}

	created := 0
	for _, sp := range posts {
		publishedAt := time.Now().AddDate(0, 0, -sp.daysAgo)
		publishedAt = time.Date(publishedAt.Year(), publishedAt.Month(), publishedAt.Day(), sp.hour, 0, 0, 0, time.Local)

		post := models.Post{
			CreatorID:   creator.ID,
			Platform:    sp.platform,
			Title:       sp.title,
			Body:        sp.body,
			ContentType: sp.contentType,
			Tags:        pq.StringArray(sp.tags),
			HasMedia:    sp.hasMedia,
			PublishedAt: &publishedAt,
		}
		if err := database.DB.Create(&post).Error; err != nil {
			log.Printf("⚠️ Failed to create post %q: %v", sp.title, err)
			continue
		}

		record := models.PerformanceRecord{
			PostID:     post.ID,
			Platform:   sp.platform,
			RecordedAt: publishedAt.AddDate(0, 0, 7),
			Views:      sp.views,
			Likes:      sp.likes,
			Comments:   sp.comments,
			Shares:     sp.shares,
		}
		if err := database.DB.Create(&record).Error; err != nil {
			log.Printf("⚠️ Failed to create performance record for %q: %v", sp.title, err)
			continue
		}
		created++
	}

	log.Printf("📄 Created %d posts with performance data", created)
}
