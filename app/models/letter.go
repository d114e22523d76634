package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Relationship status choices shown in wizard step 2.
const (
	RelationshipFicando     = "ficando"
	RelationshipNamorando   = "namorando"
	RelationshipNoivos      = "noivos"
	RelationshipCasados     = "casados"
	RelationshipApaixonados = "apaixonados"
	RelationshipOutro       = "outro"
)

// Letter tone choices for wizard step 3.
const (
	ToneRomantico = "romantico"
	ToneIntenso   = "intenso"
	ToneFofo      = "fofo"
	ToneDivertido = "divertido"
)

// Music providers resolved from the URL pasted in wizard step 5.
const (
	MusicProviderYouTube     = "youtube"
	MusicProviderSpotify     = "spotify"
	MusicProviderAppleMusic  = "apple_music"
	MusicProviderDeezer      = "deezer"
	MusicProviderAmazonMusic = "amazon_music"
	MusicProviderUnknown     = "unknown"
)

// Letter is the content + monetization aggregate the whole app revolves
// around. It is created on wizard step 1 and mutated by each following step
// and by the payment flow. IsPaid is monotonic: once true it never reverts,
// and PaidAt is set in the same update that sets IsPaid.
type Letter struct {
	ID                 string          `gorm:"type:char(36);primaryKey" json:"id"`
	UserID             *uint           `gorm:"index" json:"user_id,omitempty"`
	User               *User           `gorm:"foreignKey:UserID" json:"-"`
	BelovedName        string          `gorm:"type:varchar(120);not null" json:"beloved_name"`
	BelovedNickname    string          `gorm:"type:varchar(120);default:''" json:"beloved_nickname"`
	SenderName         string          `gorm:"type:varchar(120);default:''" json:"sender_name"`
	RelationshipStatus string          `gorm:"type:varchar(20);default:''" json:"relationship_status"`
	RelationshipCustom string          `gorm:"type:varchar(120);default:''" json:"relationship_custom"`
	Message            string          `gorm:"type:text" json:"message"`
	Tone               string          `gorm:"type:varchar(20);default:'romantico'" json:"tone"`
	MusicURL           string          `gorm:"type:varchar(255);default:''" json:"music_url"`
	MusicProvider      string          `gorm:"type:varchar(20);default:'unknown'" json:"music_provider"`
	PasswordHash       string          `gorm:"type:varchar(255);default:''" json:"-"`
	Price              decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	IsPaid             bool            `gorm:"default:false;index" json:"is_paid"`
	PaidAt             *time.Time      `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	Photos             []Photo         `gorm:"foreignKey:LetterID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	Payments           []PaymentRecord `gorm:"foreignKey:LetterID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt          time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *Letter) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Tone == "" {
		l.Tone = ToneRomantico
	}
	if l.MusicProvider == "" {
		l.MusicProvider = MusicProviderUnknown
	}
	return nil
}

// HasPassword reports whether the public page is password protected.
func (l *Letter) HasPassword() bool {
	return l.PasswordHash != ""
}

// FindLetterByID loads a letter by its UUID primary key.
func FindLetterByID(db *gorm.DB, id string) (*Letter, error) {
	var letter Letter
	result := db.Where("id = ?", id).First(&letter)
	return &letter, result.Error
}

// FindPaidExampleLetters returns the most recent paid letters for the
// home page showcase.
func FindPaidExampleLetters(db *gorm.DB, limit int) ([]Letter, error) {
	var letters []Letter
	err := db.Where("is_paid = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&letters).Error
	return letters, err
}
