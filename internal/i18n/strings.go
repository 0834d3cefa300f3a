package i18n

// Message keys shared by every language table
const (
	KeyCockpit      = "cockpit"
	KeyAircraft     = "aircraft"
	KeyParams       = "params"
	KeyAltitude     = "alt"
	KeySpeed        = "spd"
	KeySpecsTitle   = "specs_title"
	KeyMass         = "mass"
	KeyArea         = "area"
	KeySpan         = "span"
	KeyLength       = "len"
	KeyEngine       = "eng"
	KeyEnvTitle     = "env_title"
	KeyEnvDesc      = "env_desc"
	KeyWindTitle    = "wind_title"
	KeyWindDesc     = "wind_desc"
	KeyStart        = "start"
	KeyReset        = "reset"
	KeyNoRoute      = "no_route"
	KeyClickMap     = "click_map"
	KeyWaitingData  = "waiting_data"
	KeyWeatherTitle = "weather_title"
	KeySimRunning   = "sim_running"
	KeySimDone      = "sim_done"
	KeyCrashAltHigh = "crash_alt_high"
	KeyCrashAltLow  = "crash_alt_low"
	KeyCrashStall   = "crash_stall"
	KeyCrashStruct  = "crash_struct"
	KeySimFailed    = "sim_failed"
)

var tables = map[string]map[string]string{
	"TR": {
		KeyCockpit: "Kokpit Paneli", KeyAircraft: "Uçak Seçimi",
		KeyParams: "Uçuş Parametreleri", KeyAltitude: "İrtifa (m)", KeySpeed: "Hız (m/s)",
		KeySpecsTitle: "Teknik Veri Kartı", KeyMass: "Kütle", KeyArea: "Kanat Alanı (m²)",
		KeySpan: "Kanat Açıklığı", KeyLength: "Uzunluk", KeyEngine: "Motor",
		KeyEnvTitle:  "Uçuş Zarfı Analizi",
		KeyEnvDesc:   "Güvenli uçuş sınırlarını gösterir. Çizginin altı Stall bölgesidir.",
		KeyWindTitle: "Kalkış Performansı",
		KeyWindDesc:  "Rüzgar yönünün kalkış hızına etkisi. Karşı rüzgar avantaj sağlar.",
		KeyStart:     "UÇUŞU BAŞLAT", KeyReset: "Rotayı Temizle",
		KeyNoRoute:      "⚠️ Rota oluşturulmadı! Lütfen harita sekmesinden 2 nokta seçiniz.",
		KeyClickMap:     "Başlangıç ve Bitiş noktalarını belirlemek için haritaya tıklayın.",
		KeyWaitingData:  "Veri bekleniyor...",
		KeyWeatherTitle: "Atmosferik Veriler",
		KeySimRunning:   "Simülasyon Yürütülüyor...",
		KeySimDone:      "Operasyon Başarıyla Tamamlandı",
		KeyCrashAltHigh: "🚨 KRİTİK HATA: İrtifa Limiti Aşıldı (Motorlar Durdu)!",
		KeyCrashAltLow:  "🚨 KRİTİK HATA: Aşırı Alçak İrtifada Yüksek Hız (Yapısal Hasar)!",
		KeyCrashStall:   "🚨 KRİTİK HATA: Stall Hızı! (Tutunma Kaybı)",
		KeyCrashStruct:  "🚨 KRİTİK HATA: Yapısal Hız Limiti Aşıldı! (Gövde Parçalandı)",
		KeySimFailed:    "OPERASYON BAŞARISIZ",
	},
	"EN": {
		KeyCockpit: "Cockpit Panel", KeyAircraft: "Select Aircraft",
		KeyParams: "Flight Parameters", KeyAltitude: "Altitude (m)", KeySpeed: "Speed (m/s)",
		KeySpecsTitle: "Technical Data Sheet", KeyMass: "Mass", KeyArea: "Wing Area (m²)",
		KeySpan: "Wingspan", KeyLength: "Length", KeyEngine: "Engine",
		KeyEnvTitle:  "Flight Envelope",
		KeyEnvDesc:   "Shows safe flight limits. Below line is Stall zone.",
		KeyWindTitle: "Takeoff Performance",
		KeyWindDesc:  "Effect of wind on takeoff speed. Headwind is advantageous.",
		KeyStart:     "START FLIGHT", KeyReset: "Clear Route",
		KeyNoRoute:      "⚠️ No route created! Please select 2 points on the map tab.",
		KeyClickMap:     "Click on the map to set Start and End points.",
		KeyWaitingData:  "Waiting for data...",
		KeyWeatherTitle: "Atmospheric Data",
		KeySimRunning:   "Simulation Running...",
		KeySimDone:      "Operation Complete",
		KeyCrashAltHigh: "🚨 CRITICAL ERROR: Ceiling Exceeded (Flameout)!",
		KeyCrashAltLow:  "🚨 CRITICAL ERROR: Low Altitude Overspeed (Structural Failure)!",
		KeyCrashStall:   "🚨 CRITICAL ERROR: Stall Speed (Lift Lost)!",
		KeyCrashStruct:  "🚨 CRITICAL ERROR: Vne Exceeded (Airframe Damage)!",
		KeySimFailed:    "OPERATION FAILED",
	},
	"DE": {
		KeyCockpit: "Cockpit-Panel", KeyAircraft: "Flugzeugwahl",
		KeyParams: "Flugparameter", KeyAltitude: "Höhe (m)", KeySpeed: "Geschw. (m/s)",
		KeySpecsTitle: "Datenblatt", KeyMass: "Masse", KeyArea: "Flügelfläche (m²)",
		KeySpan: "Spannweite", KeyLength: "Länge", KeyEngine: "Motor",
		KeyEnvTitle:  "Flugbereich",
		KeyEnvDesc:   "Zeigt sichere Grenzen. Unter der Linie ist Stall-Bereich.",
		KeyWindTitle: "Startleistung",
		KeyWindDesc:  "Windeinfluss auf Startgeschw. Gegenwind ist vorteilhaft.",
		KeyStart:     "STARTEN", KeyReset: "Route Löschen",
		KeyNoRoute:      "⚠️ Keine Route! Bitte wählen Sie 2 Punkte auf der Karte.",
		KeyClickMap:     "Klicken Sie auf die Karte, um Start und Ziel festzulegen.",
		KeyWaitingData:  "Warte auf Daten...",
		KeyWeatherTitle: "Atmosphärische Daten",
		KeySimRunning:   "Simulation läuft...",
		KeySimDone:      "Operation Abgeschlossen",
		KeyCrashAltHigh: "🚨 KRITISCHER FEHLER: Dienstgipfelhöhe überschritten!",
		KeyCrashAltLow:  "🚨 KRITISCHER FEHLER: Zu schnell in Bodennähe!",
		KeyCrashStall:   "🚨 KRITISCHER FEHLER: Strömungsabriss (Stall)!",
		KeyCrashStruct:  "🚨 KRITISCHER FEHLER: Geschwindigkeitslimit überschritten!",
		KeySimFailed:    "OPERATION FEHLGESCHLAGEN",
	},
	"FR": {
		KeyCockpit: "Panneau Cockpit", KeyAircraft: "Choix Avion",
		KeyParams: "Paramètres", KeyAltitude: "Altitude (m)", KeySpeed: "Vitesse (m/s)",
		KeySpecsTitle: "Fiche Technique", KeyMass: "Masse", KeyArea: "Surface alaire (m²)",
		KeySpan: "Envergure", KeyLength: "Longueur", KeyEngine: "Moteur",
		KeyEnvTitle:  "Domaine de Vol",
		KeyEnvDesc:   "Limites de sécurité. Zone de décrochage sous la ligne.",
		KeyWindTitle: "Performance Décollage",
		KeyWindDesc:  "Effet du vent. Le vent de face est avantageux.",
		KeyStart:     "DÉMARRER", KeyReset: "Effacer",
		KeyNoRoute:      "⚠️ Pas de route! Sélectionnez 2 points sur la carte.",
		KeyClickMap:     "Cliquez sur la carte pour définir le départ et l'arrivée.",
		KeyWaitingData:  "En attente...",
		KeyWeatherTitle: "Données Atmosphériques",
		KeySimRunning:   "Simulation en cours...",
		KeySimDone:      "Opération Terminée",
		KeyCrashAltHigh: "🚨 ERREUR CRITIQUE: Plafond dépassé!",
		KeyCrashAltLow:  "🚨 ERREUR CRITIQUE: Survitesse à basse altitude!",
		KeyCrashStall:   "🚨 ERREUR CRITIQUE: Décrochage!",
		KeyCrashStruct:  "🚨 ERREUR CRITIQUE: Vitesse structurelle dépassée!",
		KeySimFailed:    "ÉCHEC DE L'OPÉRATION",
	},
	"RU": {
		KeyCockpit: "Панель Кабины", KeyAircraft: "Выбор Самолета",
		KeyParams: "Параметры", KeyAltitude: "Высота (м)", KeySpeed: "Скорость (м/с)",
		KeySpecsTitle: "Тех. Паспорт", KeyMass: "Масса", KeyArea: "Площадь крыла (м²)",
		KeySpan: "Размах", KeyLength: "Длина", KeyEngine: "Двигатель",
		KeyEnvTitle:  "Огибающая Полета",
		KeyEnvDesc:   "Безопасные границы. Ниже линии - сваливание.",
		KeyWindTitle: "Взлетные Хар-ки",
		KeyWindDesc:  "Влияние ветра. Встречный ветер выгоден.",
		KeyStart:     "СТАРТ", KeyReset: "Сброс",
		KeyNoRoute:      "⚠️ Нет маршрута! Выберите 2 точки на карте.",
		KeyClickMap:     "Нажмите на карту для выбора точек.",
		KeyWaitingData:  "Ожидание данных...",
		KeyWeatherTitle: "Атмосферные Данные",
		KeySimRunning:   "Симуляция запущена...",
		KeySimDone:      "Операция Завершена",
		KeyCrashAltHigh: "🚨 КРИТИЧЕСКАЯ ОШИБКА: Превышен потолок!",
		KeyCrashAltLow:  "🚨 КРИТИЧЕСКАЯ ОШИБКА: Превышение скорости у земли!",
		KeyCrashStall:   "🚨 КРИТИЧЕСКАЯ ОШИБКА: Сваливание!",
		KeyCrashStruct:  "🚨 КРИТИЧЕСКАЯ ОШИБКА: Разрушение конструкции!",
		KeySimFailed:    "ОПЕРАЦИЯ ПРОВАЛЕНА",
	},
	"JP": {
		KeyCockpit: "コックピット", KeyAircraft: "機体選択",
		KeyParams: "飛行パラメータ", KeyAltitude: "高度 (m)", KeySpeed: "速度 (m/s)",
		KeySpecsTitle: "技術データ", KeyMass: "質量", KeyArea: "翼面積 (m²)",
		KeySpan: "翼幅", KeyLength: "全長", KeyEngine: "エンジン",
		KeyEnvTitle:  "飛行包絡線",
		KeyEnvDesc:   "安全限界を示します。線の下は失速領域です。",
		KeyWindTitle: "離陸性能",
		KeyWindDesc:  "風の影響。向かい風は離陸に有利です。",
		KeyStart:     "開始", KeyReset: "リセット",
		KeyNoRoute:      "⚠️ ルートがありません！地図上で2点を選択してください。",
		KeyClickMap:     "地図をクリックして始点と終点を設定してください。",
		KeyWaitingData:  "データ待機中...",
		KeyWeatherTitle: "気象データ",
		KeySimRunning:   "シミュレーション実行中...",
		KeySimDone:      "作戦完了",
		KeyCrashAltHigh: "🚨 致命的エラー: 上昇限度超過!",
		KeyCrashAltLow:  "🚨 致命的エラー: 低高度での速度超過!",
		KeyCrashStall:   "🚨 致命的エラー: 失速 (ストール)!",
		KeyCrashStruct:  "🚨 致命的エラー: 構造限界速度超過!",
		KeySimFailed:    "作戦失敗",
	},
}
