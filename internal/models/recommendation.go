package models

// Recommendation 歌曲推荐，Score 由投票累计
type Recommendation struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	YoutubeLink string `gorm:"column:youtube_link;not null" json:"youtubeLink"`
	Score       int    `gorm:"not null;default:0" json:"score"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
