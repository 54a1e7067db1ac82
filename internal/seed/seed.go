// Package seed generates sample purchases for local development.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"kakeibo/internal/logger"
	"kakeibo/internal/models"
)

// Months is how many calendar months of data are generated, counting back
// from the current one.
const Months = 3

type profile struct {
	min, max    int64
	names       []string
	description string
}

var profiles = map[string]profile{
	"食費":  {200, 8000, []string{"スーパーでの買い物", "コンビニ", "レストラン", "お弁当", "おやつ"}, "野菜と肉を購入"},
	"交通費": {150, 5000, []string{"電車代", "バス代", "タクシー", "ガソリン代", "駐車場代"}, "往復料金"},
	"書籍":  {500, 3000, []string{"技術書", "小説", "雑誌", "漫画", "参考書"}, "プログラミング関連書籍"},
	"家電":  {3000, 150000, []string{"冷蔵庫", "洗濯機", "テレビ", "エアコン", "掃除機"}, "省エネモデルを選択"},
	"衣類":  {1000, 30000, []string{"シャツ", "パンツ", "靴", "コート", "アクセサリー"}, "セール品を購入"},
	"医療費": {500, 10000, []string{"病院", "薬局", "健康診断", "マッサージ", "サプリメント"}, "定期検診"},
	"娯楽":  {500, 15000, []string{"映画", "コンサート", "ゲーム", "カラオケ", "旅行"}, "友人と一緒に"},
	"光熱費": {3000, 12000, []string{"電気代", "ガス代", "水道代"}, "月額料金"},
	"通信費": {2000, 8000, []string{"携帯電話", "インターネット", "プロバイダー"}, "月額料金"},
}

// categories fixes the iteration order so a seeded generator is reproducible.
var categories = []string{"食費", "交通費", "書籍", "家電", "衣類", "医療費", "娯楽", "光熱費", "通信費"}

// Generate builds 15 to 25 purchases for each of the Months months ending
// with today's month. Days are kept within 1..28.
func Generate(rng *rand.Rand, today models.Date) []models.Purchase {
	var out []models.Purchase
	for offset := 0; offset < Months; offset++ {
		first := models.NewDate(today.Year(), today.Month()-time.Month(offset), 1)
		count := 15 + rng.IntN(11)
		for i := 0; i < count; i++ {
			category := categories[rng.IntN(len(categories))]
			p := profiles[category]

			purchase := models.Purchase{
				Name:     p.names[rng.IntN(len(p.names))],
				Amount:   decimal.NewFromInt(p.min + rng.Int64N(p.max-p.min+1)),
				Category: category,
				Date:     models.NewDate(first.Year(), first.Month(), 1+rng.IntN(28)),
			}
			if rng.Float64() < 0.5 {
				desc := p.description
				purchase.Description = &desc
			}
			out = append(out, purchase)
		}
	}
	return out
}

// Run inserts the generated purchases, skipping any identical purchase that
// already exists. It returns how many rows were created.
func Run(ctx context.Context, db *gorm.DB, purchases []models.Purchase) (int, error) {
	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range purchases {
			q := tx.Where("name = ? AND amount = ? AND category = ? AND date = ?", p.Name, p.Amount, p.Category, p.Date)
			if p.Description == nil {
				q = q.Where("description IS NULL")
			} else {
				q = q.Where("description = ?", *p.Description)
			}

			var existing int64
			if err := q.Model(&models.Purchase{}).Count(&existing).Error; err != nil {
				return fmt.Errorf("looking up %s on %s: %w", p.Name, p.Date, err)
			}
			if existing > 0 {
				continue
			}

			row := p
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("seeding %s on %s: %w", p.Name, p.Date, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Get().Infow("seeded purchases", "generated", len(purchases), "created", created)
	return created, nil
}
