package advisory

const (
	urlUmbrella        = "https://www.ozon.ru/search/?text=%D0%B7%D0%BE%D0%BD%D1%82"
	urlRaincoat        = "https://www.ozon.ru/search/?text=%D0%B4%D0%BE%D0%B6%D0%B4%D0%B5%D0%B2%D0%B8%D0%BA"
	urlThermalWear     = "https://www.ozon.ru/search/?text=%D1%82%D0%B5%D1%80%D0%BC%D0%BE%D0%B1%D0%B5%D0%BB%D1%8C%D0%B5"
	urlSunglasses      = "https://www.ozon.ru/search/?text=%D1%81%D0%BE%D0%BB%D0%BD%D1%86%D0%B5%D0%B7%D0%B0%D1%89%D0%B8%D1%82%D0%BD%D1%8B%D0%B5+%D0%BE%D1%87%D0%BA%D0%B8"
	urlFashionTrends   = "https://www.vogue.com/fashion/trends"
	urlCityTrends      = "https://www.vogue.com/article/backless-loafers"
	urlRoutes          = "https://yandex.ru/maps/"
	urlTraffic         = "https://yandex.ru/maps/moscow/probki"
	urlPublicTransport = "https://yandex.ru/maps/moscow/transport"
	urlMigraines       = "https://www.mayoclinic.org/diseases-conditions/migraine-headache/expert-answers/migraine-headache/faq-20058505"
)

// staticLinks builds a fresh copy so callers may not alias shared slices.
func staticLinks() Links {
	return Links{
		Gear: []Link{
			{Label: "Зонты", URL: urlUmbrella},
			{Label: "Дождевики", URL: urlRaincoat},
			{Label: "Термобелье", URL: urlThermalWear},
		},
		Fashion: []Link{
			{Label: "Тренды Vogue", URL: urlFashionTrends},
			{Label: "Street-style примеры", URL: urlCityTrends},
		},
		Transport: []Link{
			{Label: "Маршруты в Яндекс Картах", URL: urlRoutes},
			{Label: "Пробки", URL: urlTraffic},
			{Label: "Общественный транспорт", URL: urlPublicTransport},
		},
		Health: []Link{
			{Label: "Погодные триггеры мигрени (Mayo Clinic)", URL: urlMigraines},
		},
	}
}
