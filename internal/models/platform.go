package models

// Platform identifies the social platform a post or account belongs to
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformBlog      Platform = "blog"
)

// AllPlatforms lists every platform the system knows about
func AllPlatforms() []Platform {
	return []Platform{
		PlatformYouTube,
		PlatformTikTok,
		PlatformInstagram,
		PlatformTwitter,
		PlatformBlog,
	}
}

// IsValid reports whether p is a known platform
func (p Platform) IsValid() bool {
	for _, known := range AllPlatforms() {
		if p == known {
			return true
		}
	}
	return false
}
