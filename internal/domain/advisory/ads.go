package advisory

const adTitle = "Реклама по погоде"

// SelectAd picks the advertisement for a bucket. It never returns an empty ad.
func SelectAd(bucket Bucket) Advertisement {
	switch bucket {
	case BucketRain, BucketDrizzle:
		return Advertisement{
			Title:     adTitle,
			Body:      "Ожидаются осадки. Проверьте подборку зонтов и дождевиков онлайн.",
			LinkLabel: "Смотреть зонты и дождевики",
			LinkURL:   urlUmbrella,
		}
	case BucketSnow:
		return Advertisement{
			Title:     adTitle,
			Body:      "Снег и холод: может пригодиться термобелье и утепленная обувь.",
			LinkLabel: "Подобрать термобелье",
			LinkURL:   urlThermalWear,
		}
	case BucketStorm:
		return Advertisement{
			Title:     adTitle,
			Body:      "Грозовая погода: лучше выбрать водозащиту для одежды и обуви.",
			LinkLabel: "Посмотреть дождевики",
			LinkURL:   urlRaincoat,
		}
	default:
		return Advertisement{
			Title:     adTitle,
			Body:      "Ясная или облачная погода: можно подобрать солнцезащитные аксессуары.",
			LinkLabel: "Смотреть солнцезащитные очки",
			LinkURL:   urlSunglasses,
		}
	}
}
