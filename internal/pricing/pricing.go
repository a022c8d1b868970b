package pricing

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/MrJamesThe3rd/fixnet/internal/keyword"
)

// Brand is a recognized device manufacturer label.
type Brand string

const (
	BrandApple   Brand = "Apple"
	BrandSamsung Brand = "Samsung"
	BrandXiaomi  Brand = "Xiaomi"
	BrandHuawei  Brand = "Huawei"
	BrandOther   Brand = "Другие"
)

// Bucket is the problem type used for pricing. It is independent of the
// diagnostic categories.
type Bucket string

const (
	BucketScreen   Bucket = "экран"
	BucketBattery  Bucket = "батарея"
	BucketAudio    Bucket = "звук"
	BucketWater    Bucket = "вода"
	BucketSoftware Bucket = "программа"
)

// Result is a formatted price quote.
type Result struct {
	EstimatedPrice string
	Description    string
}

// Order: screen, battery, audio, water. Anything else is software.
var bucketRules = []keyword.Rule[Bucket]{
	{Triggers: []string{"экран", "дисплей"}, Result: BucketScreen},
	{Triggers: []string{"батарея", "аккумулятор"}, Result: BucketBattery},
	{Triggers: []string{"звук", "динамик"}, Result: BucketAudio},
	{Triggers: []string{"вода", "воду"}, Result: BucketWater},
}

// BucketFor derives the pricing bucket from a problem description.
func BucketFor(problem string) Bucket {
	return keyword.First(problem, bucketRules, BucketSoftware)
}

// ResolveBrand returns the price table row for brand. Matching is exact;
// unrecognized brands use the BrandOther row.
func ResolveBrand(brand string) Brand {
	b := Brand(brand)
	if _, ok := prices[b]; ok {
		return b
	}

	return BrandOther
}

// Brands returns the recognized brand labels in display order.
func Brands() []Brand {
	return []Brand{BrandApple, BrandSamsung, BrandXiaomi, BrandHuawei, BrandOther}
}

// Buckets returns every bucket BucketFor can produce.
func Buckets() []Bucket {
	return []Bucket{BucketScreen, BucketBattery, BucketAudio, BucketWater, BucketSoftware}
}

// Estimate quotes a repair price. The model is echoed into the description
// verbatim and does not affect the price.
func Estimate(brand, model, problem string) Result {
	bucket := BucketFor(problem)
	price := Price(ResolveBrand(brand), bucket)

	return Result{
		EstimatedPrice: FormatPrice(price),
		Description:    fmt.Sprintf("Ориентировочная стоимость ремонта %s для %s %s", bucket, brand, model),
	}
}

// FormatPrice renders a whole-rouble amount as "от 8 000 ₽".
func FormatPrice(amount int64) string {
	return "от " + humanize.FormatInteger("# ###.", int(amount)) + " ₽"
}
