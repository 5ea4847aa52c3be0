package advisory

const (
	coldMaxC = 5.0
	hotMinC  = 26.0
)

// Advise composes the four recommendation lists and the static links.
// Temperature thresholds are inclusive and only tempMax is consulted; tempMin
// is accepted so callers can pass a forecast range unchanged.
func Advise(bucket Bucket, purpose Purpose, tempMin, tempMax float64) Recommendation {
	return Recommendation{
		Take:      takeItems(bucket, tempMax),
		Wear:      wearItems(purpose, tempMax),
		Transport: transportItems(purpose, bucket),
		Health:    healthItems(bucket),
		Links:     staticLinks(),
	}
}

func isCold(tempMax float64) bool { return tempMax <= coldMaxC }

func isHot(tempMax float64) bool { return tempMax >= hotMinC }

func takeItems(bucket Bucket, tempMax float64) []string {
	switch bucket {
	case BucketRain, BucketDrizzle:
		return []string{"Зонт или дождевик.", "Непромокаемую обувь или запасные носки."}
	case BucketSnow:
		return []string{"Перчатки и шарф.", "Термокружку или теплый напиток."}
	case BucketStorm:
		return []string{"Легкую водозащитную куртку.", "Пауэрбанк на случай задержек в пути."}
	}
	items := []string{"Бутылку воды и легкий перекус."}
	if isHot(tempMax) {
		items = append(items, "SPF и головной убор.")
	}
	return items
}

func wearItems(purpose Purpose, tempMax float64) []string {
	var items []string
	switch purpose {
	case PurposeWalk:
		items = append(items, "Для прогулки: многослойный комплект и удобные кроссовки.")
	case PurposeVacation:
		items = append(items, "Для отпуска: капсульный набор вещей, чтобы быстро менять образы.")
	case PurposeWork:
		items = append(items, "Для дороги и офиса: непромокаемый верх + базовый smart casual.")
	default:
		items = append(items, "Для повседневного выхода: комфортный городской casual-образ.")
	}
	if isCold(tempMax) {
		items = append(items, "По температуре: добавьте теплый слой и закрытую обувь.")
	}
	if isHot(tempMax) {
		items = append(items, "По температуре: выбирайте дышащие ткани и светлые тона.")
	}
	return append(items, "Актуальные тренды смотрите в модных подборках по сезонам.")
}

func transportItems(purpose Purpose, bucket Bucket) []string {
	switch purpose {
	case PurposeWork:
		if bucket.adverse() {
			return []string{"Лучше выехать раньше и проверить пробки/маршрут онлайн."}
		}
		return []string{"Можно выбрать общественный транспорт или велосипед по ситуации."}
	case PurposeVacation:
		return []string{"Для поездок по городу заранее проверьте туристические маршруты и транспорт."}
	case PurposeWalk:
		if bucket.adverse() {
			return []string{"Если осадки, лучше выбрать короткие маршруты с точками укрытия."}
		}
		return []string{"Для прогулки подойдет любой маршрут: оцените время в пути в картах заранее."}
	default:
		return []string{"Для справки можно сравнить время в пути в картах перед выходом."}
	}
}

func healthItems(bucket Bucket) []string {
	switch bucket {
	case BucketStorm:
		return []string{"Метеозависимым лучше снизить нагрузку и избегать длительного пребывания на улице."}
	case BucketSnow, BucketRain:
		return []string{"При перепадах давления и влажности держите под рукой назначенные лекарства."}
	default:
		return []string{"Следите за режимом сна, воды и питания: это снижает риск погодных триггеров."}
	}
}
