package pricing

// prices is brand -> bucket -> base price in whole roubles.
// Every row must cover every bucket; see TestPriceTable_Complete.
var prices = map[Brand]map[Bucket]int64{
	BrandApple:   {BucketScreen: 8000, BucketBattery: 3500, BucketAudio: 2500, BucketWater: 5000, BucketSoftware: 1500},
	BrandSamsung: {BucketScreen: 6000, BucketBattery: 2500, BucketAudio: 2000, BucketWater: 4000, BucketSoftware: 1200},
	BrandXiaomi:  {BucketScreen: 4000, BucketBattery: 2000, BucketAudio: 1500, BucketWater: 3000, BucketSoftware: 1000},
	BrandHuawei:  {BucketScreen: 5000, BucketBattery: 2200, BucketAudio: 1800, BucketWater: 3500, BucketSoftware: 1100},
	BrandOther:   {BucketScreen: 3500, BucketBattery: 1800, BucketAudio: 1500, BucketWater: 2500, BucketSoftware: 900},
}

// Price returns the base price for a resolved brand and bucket.
// Unknown brands are priced from the BrandOther row.
func Price(brand Brand, bucket Bucket) int64 {
	row, ok := prices[brand]
	if !ok {
		row = prices[BrandOther]
	}

	return row[bucket]
}
