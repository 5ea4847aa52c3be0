package weather

// User facing messages shared by the service and the upstream adapters.
const (
	MsgCityRequired      = "Укажите город в параметре city"
	MsgInvalidDate       = "Неверный формат даты. Используйте YYYY-MM-DD"
	MsgDateOutOfRange    = "Можно выбрать дату только с %s по %s"
	MsgCityNotFound      = "Город не найден"
	MsgGeocodingFailed   = "Ошибка геокодирования города"
	MsgMissingAPIKey     = "Не задан WEATHER_API_KEY"
	MsgProviderFailed    = "Погодный сервис вернул ошибку"
	MsgProviderMalformed = "Некорректный ответ погодного сервиса"
	MsgNoForecast        = "Нет прогноза на выбранную дату"
)
