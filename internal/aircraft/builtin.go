package aircraft

func builtinProfiles() []Profile {
	return []Profile{
		{
			Name:                     "Boeing 737-800",
			MassKg:                   70000,
			WingAreaM2:               124.6,
			ServiceCeilingM:          12500,
			StructuralSpeedLimitMps:  260,
			LowAltitudeSpeedLimitMps: 170,
			FuelRateKgS:              2.8,
			Length:                   "39.5 m",
			Span:                     "35.8 m",
			Engine:                   "2x CFM56-7B Turbofan",
			Image:                    "b737.jpg",
			Icon:                     "plane.png",
			Descriptions: map[string]string{
				"TR": "Dünyanın en popüler yolcu uçağı.",
				"EN": "World's most popular airliner.",
				"DE": "Beliebtestes Verkehrsflugzeug.",
				"FR": "L'avion de ligne le plus populaire.",
				"RU": "Самый популярный авиалайнер.",
				"JP": "世界で最も人気のある旅客機。",
			},
		},
		{
			Name:                     "F-16 Fighting Falcon",
			MassKg:                   12000,
			WingAreaM2:               27.8,
			ServiceCeilingM:          15000,
			StructuralSpeedLimitMps:  600,
			LowAltitudeSpeedLimitMps: 400,
			FuelRateKgS:              4.5,
			Length:                   "15.06 m",
			Span:                     "9.96 m",
			Engine:                   "1x GE F110",
			Image:                    "f16.jpg",
			Icon:                     "jet.png",
			Descriptions: map[string]string{
				"TR": "Yüksek manevra kabiliyetli savaş jeti.",
				"EN": "High maneuverability fighter jet.",
				"DE": "Hochmanövrierfähiger Kampfjet.",
				"FR": "Avion de chasse très maniable.",
				"RU": "Высокоманевренный истребитель.",
				"JP": "高機動戦闘機。",
			},
		},
		{
			Name:                     "Cessna 172 Skyhawk",
			MassKg:                   1100,
			WingAreaM2:               16.2,
			ServiceCeilingM:          4100,
			StructuralSpeedLimitMps:  80,
			LowAltitudeSpeedLimitMps: 65,
			FuelRateKgS:              0.3,
			Length:                   "8.28 m",
			Span:                     "11.00 m",
			Engine:                   "1x Lycoming IO-360",
			Image:                    "cessna.jpg",
			Icon:                     "cessna.png",
			Descriptions: map[string]string{
				"TR": "Eğitim uçağı.",
				"EN": "Training aircraft.",
				"DE": "Schulflugzeug.",
				"FR": "Avion d'entraînement.",
				"RU": "Учебно-тренировочный самолет.",
				"JP": "練習機。",
			},
		},
		customTemplate(),
	}
}

func customTemplate() Profile {
	return Profile{
		Name:                     CustomName,
		MassKg:                   5000,
		WingAreaM2:               30,
		ServiceCeilingM:          10000,
		StructuralSpeedLimitMps:  300,
		LowAltitudeSpeedLimitMps: 200,
		FuelRateKgS:              1.5,
		Length:                   "N/A",
		Span:                     "N/A",
		Engine:                   "Prototype",
		Image:                    "custom.jpg",
		Icon:                     "custom.png",
		Descriptions: map[string]string{
			"TR": "Deneysel.",
			"EN": "Experimental.",
			"DE": "Experimentell.",
			"FR": "Expérimental.",
			"RU": "Экспериментальный.",
			"JP": "実験的。",
		},
	}
}
