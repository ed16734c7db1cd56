package catalog

// Static tables for the monitoring network. Station indicator lists are kept
// in the order the stations report them.

var airQualityIndicators = map[int]Indicator{
	1:  {ID: 1, Name: "Sulphur dioxide", Formula: "SO2", Unit: "μg/m³", Description: "Sulphur dioxide is emitted to ambient air from burning sulphur containing fuels."},
	3:  {ID: 3, Name: "Nitrogen dioxide", Formula: "NO2", Unit: "μg/m³", Description: "Nitrogen dioxide is emitted to ambient air from combustion where air nitrogen is reacting with oxygen at elevated temperatures."},
	4:  {ID: 4, Name: "Carbon monoxide", Formula: "CO", Unit: "mg/m³", Description: "Carbon monoxide is emitted from incomplete combustion of carbon based fuels."},
	6:  {ID: 6, Name: "Ozone", Formula: "O3", Unit: "μg/m³", Description: "Ground level ozone is formed in atmosphere photochemical reactions."},
	8:  {ID: 8, Name: "Volatile organic compounds", Formula: "NMHC", Unit: "μgC/m³", Description: "Volatile organic compounds are class of organic compounds whose partial pressure is over 0.01 kPa at 20°C."},
	10: {ID: 10, Name: "Ammonia", Formula: "NH3", Unit: "μg/m³", Description: "Ammonia is gaseous substance with strong irritating smell."},
	11: {ID: 11, Name: "Hydrogen sulphide", Formula: "H2S", Unit: "μg/m³", Description: "Hydrogen sulphide is gaseous substance with unpleasant smell."},
	13: {ID: 13, Name: "Mercury", Formula: "Hg", Unit: "ng/m³"},
	14: {ID: 14, Name: "Benzene", Formula: "C6H6", Unit: "μg/m³", Description: "Benzene is aromatic hydrocarbon which consists of only one aromatic cycle."},
	16: {ID: 16, Name: "Toluene", Formula: "C7H8", Unit: "μg/m³"},
	18: {ID: 18, Name: "Xylene", Formula: "C8H10", Unit: "μg/m³"},
	20: {ID: 20, Name: "TSP", Formula: "TSP"},
	21: {ID: 21, Name: "PM10", Formula: "PM10", Unit: "μg/m³", Description: "Solid and liquid particulate matter with aerodynamic diameter less than 10 micrometres."},
	23: {ID: 23, Name: "PM2.5", Formula: "PM2.5", Unit: "μg/m³", Description: "Solid and liquid particulate matter with aerodynamic diameter less than 2.5 micrometres."},
	34: {ID: 34, Name: "Temperature", Formula: "TEMP", Unit: "C", Description: "Ambient temperature is measured continuously with thermometer at 2 m."},
	37: {ID: 37, Name: "Wind direction at 10 m", Formula: "WD10", Unit: "deg", Description: "Wind direction shows this point at horizon from where wind is blowing."},
	41: {ID: 41, Name: "Wind speed at 10 m", Formula: "WS10", Unit: "m/s", Description: "Wind speed is measured at 10 m using ultrasonic anemometer."},
	66: {ID: 66, Name: "Temperature at 10 m", Formula: "TEMP10", Unit: "C", Description: "Ambient temperature is measured continuously with thermometer at 10 m."},
}

var pollenIndicators = map[int]Indicator{
	44: {ID: 44, Name: "Alternaria", Unit: "tk/m³", Description: "Alternaria is a genus of ascomycete fungi."},
	47: {ID: 47, Name: "Juniper", Unit: "tk/m³", Description: "Junipers are coniferous plants in the genus Juniperus of the cypress family Cupressaceae."},
	48: {ID: 48, Name: "Birch", Unit: "tk/m³", Description: "Birch is a thinleaved deciduous hardwood tree of the genus Betula in the family Betulaceae."},
	49: {ID: 49, Name: "Grasses", Unit: "tk/m³", Description: "The Poaceae (also called Gramineae or true grasses) are a large and nearly ubiquitous family of monocotyledonous flowering plants."},
	51: {ID: 51, Name: "Alder", Unit: "tk/m³", Description: "Alder is the common name of a genus of flowering plants (Alnus) belonging to the birch family Betulaceae."},
	57: {ID: 57, Name: "Wormwood", Unit: "tk/m³", Description: "Artemisia vulgaris (mugwort or common wormwood) is one of several species in the genus Artemisia commonly known as mugwort."},
	59: {ID: 59, Name: "Hazel", Unit: "tk/m³", Description: "The hazel (Corylus) is a genus of deciduous trees and large shrubs native to the temperate Northern Hemisphere."},
	62: {ID: 62, Name: "Saltbush", Unit: "tk/m³", Description: "Atriplex is a plant genus of 250-300 species, known by the common names of saltbush and orache (or orach)."},
}

var radiationIndicators = map[int]Indicator{
	80: {ID: 80, Name: "Radiation", Unit: "nSv/h", Description: "Ambient radiation measurement."},
}

var airQualityStations = map[int]Station{
	1:  {ID: 1, Name: "Kohtla-Järve", Indicators: []int{11, 1, 3, 4, 21, 23, 6, 34, 37, 41}},
	3:  {ID: 3, Name: "Lahemaa", Indicators: []int{1, 3, 4, 6, 13, 23, 34, 37, 41}},
	4:  {ID: 4, Name: "Narva", Indicators: []int{1, 3, 4, 6, 11, 21, 23, 34, 37, 41}},
	5:  {ID: 5, Name: "Liivalaia", Indicators: []int{21, 23, 3, 4, 6, 1}},
	6:  {ID: 6, Name: "Rahu", Indicators: []int{1, 3, 4, 6, 21, 11}},
	7:  {ID: 7, Name: "Õismäe", Indicators: []int{1, 3, 4, 6, 14, 16, 18, 21, 23}},
	8:  {ID: 8, Name: "Tartu", Indicators: []int{21, 23, 4, 3, 1, 6, 37, 41, 66}},
	9:  {ID: 9, Name: "Vilsandi", Indicators: []int{1, 3, 6, 23, 34, 37, 41, 81, 82}},
	10: {ID: 10, Name: "Saarejärve", Indicators: []int{1, 3, 6, 23, 34, 37, 41}},
	16: {ID: 16, Name: "Paldiski", Indicators: []int{8, 14, 16, 18, 34, 37, 41}},
	21: {ID: 21, Name: "Sillamäe", Indicators: []int{8, 10, 11, 14, 16, 18, 20, 21, 23, 34, 37, 41}},
	33: {ID: 33, Name: "Tahkuse", Indicators: []int{1, 3, 6, 11, 68, 69}},
	38: {ID: 38, Name: "Sinimäe", Indicators: []int{1, 8, 11, 21, 23, 31, 34, 37, 41}},
	40: {ID: 40, Name: "VKG", Indicators: []int{1, 11, 34, 37, 41}},
	41: {ID: 41, Name: "Sillamäe 2", Indicators: []int{10, 34, 37, 41}},
	44: {ID: 44, Name: "Kiviõli", Indicators: []int{8, 11, 21, 34, 37, 41, 1}},
}

var pollenStations = map[int]Station{
	23: {ID: 23, Name: "Tallinn", Indicators: []int{48, 51, 59, 49, 57, 47, 62, 44}},
	25: {ID: 25, Name: "Tartu", Indicators: []int{48, 51, 59, 49, 57, 47, 62, 44}},
	27: {ID: 27, Name: "Pärnu", Indicators: []int{48, 51, 59, 49, 57, 47, 62, 44}},
	29: {ID: 29, Name: "Jõhvi", Indicators: []int{48, 51, 59, 49, 57, 47, 62, 44}},
	31: {ID: 31, Name: "Kuressaare", Indicators: []int{48, 51, 59, 49, 57, 47, 62, 44}},
}

var radiationStations = map[int]Station{
	45: {ID: 45, Name: "Kunda kiirgus", Indicators: []int{80}},
	46: {ID: 46, Name: "Kuusiku kiirgus", Indicators: []int{80}},
	47: {ID: 47, Name: "Lääne-Nigula kiirgus", Indicators: []int{80}},
	48: {ID: 48, Name: "Mustvee kiirgus", Indicators: []int{80}},
	49: {ID: 49, Name: "Narva kiirgus", Indicators: []int{80}},
	50: {ID: 50, Name: "Pärnu kiirgus", Indicators: []int{80}},
	51: {ID: 51, Name: "Ristna kiirgus", Indicators: []int{80}},
	52: {ID: 52, Name: "Sõrve kiirgus", Indicators: []int{80}},
	53: {ID: 53, Name: "Tallinna kiirgus", Indicators: []int{80}},
	54: {ID: 54, Name: "Tõravere kiirgus", Indicators: []int{80}},
	55: {ID: 55, Name: "Türi kiirgus", Indicators: []int{80}},
	56: {ID: 56, Name: "Väike-Maarja kiirgus", Indicators: []int{80}},
	57: {ID: 57, Name: "Valga kiirgus", Indicators: []int{80}},
	58: {ID: 58, Name: "Võru kiirgus", Indicators: []int{80}},
	59: {ID: 59, Name: "Viljandi kiirgus", Indicators: []int{80}},
}
