package config

// JHU CSSE global time series. The 2020 "time_series_19-covid-*" files were
// retired upstream in favour of these, with the same column layout.
const (
	DefaultConfirmedURL = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_confirmed_global.csv"
	DefaultDeathsURL    = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_deaths_global.csv"
	DefaultRecoveredURL = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_recovered_global.csv"
	DefaultHomeURL      = "https://github.com/CSSEGISandData/COVID-19"
)
