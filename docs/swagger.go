// Package docs ATL08 Height Map API.
//
// Сервис построения интерактивных карт высоты растительности по
// наблюдениям ICESat-2 ATL08. Карта строится как HTML страница Leaflet:
// подложки, контуры HRSI CHM, цветные маркеры наблюдений и легенда.
//
// Основные возможности:
// - Построение карты по наблюдениям, переданным в запросе или из гранулы
// - Фильтрация ночных наблюдений
// - Асинхронное построение через Redis Streams
// - Справочники подложек и шкалы цветов
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- text/html
//
// swagger:meta
package docs
