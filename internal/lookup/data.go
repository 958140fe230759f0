package lookup

// cityCodes maps normalized-or-accented city and airport names to the IATA
// code used for search. Multiple aliases may point at the same code; the
// first alias seen wins the reverse (display) mapping.
var cityCodes = map[string]string{
	// Brazil
	"são paulo":      "GRU",
	"sao paulo":      "GRU",
	"guarulhos":      "GRU",
	"congonhas":      "CGH",
	"rio de janeiro": "GIG",
	"rio":            "GIG",
	"galeão":         "GIG",
	"santos dumont":  "SDU",
	"brasília":       "BSB",
	"brasilia":       "BSB",
	"salvador":       "SSA",
	"recife":         "REC",
	"fortaleza":      "FOR",
	"belo horizonte": "CNF",
	"confins":        "CNF",
	"porto alegre":   "POA",
	"curitiba":       "CWB",
	"florianópolis":  "FLN",
	"florianopolis":  "FLN",
	"manaus":         "MAO",
	"belém":          "BEL",
	"belem":          "BEL",
	"natal":          "NAT",
	"maceió":         "MCZ",
	"maceio":         "MCZ",
	"goiânia":        "GYN",
	"goiania":        "GYN",
	"vitória":        "VIX",
	"vitoria":        "VIX",
	"campinas":       "VCP",
	"foz do iguaçu":  "IGU",
	"foz do iguacu":  "IGU",
	"porto seguro":   "BPS",

	// South America
	"buenos aires": "EZE",
	"santiago":     "SCL",
	"lima":         "LIM",
	"bogotá":       "BOG",
	"bogota":       "BOG",
	"montevidéu":   "MVD",
	"montevideu":   "MVD",
	"montevideo":   "MVD",

	// North America
	"nova york":    "JFK",
	"nova iorque":  "JFK",
	"new york":     "JFK",
	"miami":        "MIA",
	"orlando":      "MCO",
	"los angeles":  "LAX",
	"toronto":      "YYZ",
	"cidade do méxico": "MEX",
	"cidade do mexico": "MEX",
	"mexico city":  "MEX",

	// Europe
	"lisboa":    "LIS",
	"lisbon":    "LIS",
	"porto":     "OPO",
	"madri":     "MAD",
	"madrid":    "MAD",
	"barcelona": "BCN",
	"paris":     "CDG",
	"londres":   "LHR",
	"london":    "LHR",
	"roma":      "FCO",
	"rome":      "FCO",
	"milão":     "MXP",
	"milao":     "MXP",
	"milan":     "MXP",
	"amsterdã":  "AMS",
	"amsterda":  "AMS",
	"amsterdam": "AMS",
	"frankfurt": "FRA",
	"munique":   "MUC",
	"munich":    "MUC",
	"zurique":   "ZRH",
	"zurich":    "ZRH",

	// elsewhere
	"dubai":   "DXB",
	"tóquio":  "NRT",
	"toquio":  "NRT",
	"tokyo":   "NRT",
	"sydney":  "SYD",
	"joanesburgo": "JNB",
	"johannesburg": "JNB",
}

// airportNames overrides the display name for codes whose first alias above
// is not the nicest label
var airportNames = map[string]string{
	"GRU": "São Paulo (Guarulhos)",
	"CGH": "São Paulo (Congonhas)",
	"GIG": "Rio de Janeiro (Galeão)",
	"SDU": "Rio de Janeiro (Santos Dumont)",
	"BSB": "Brasília",
	"CNF": "Belo Horizonte (Confins)",
	"VCP": "Campinas (Viracopos)",
	"EZE": "Buenos Aires (Ezeiza)",
	"JFK": "Nova York (JFK)",
	"CDG": "Paris (Charles de Gaulle)",
	"LHR": "Londres (Heathrow)",
	"FCO": "Roma (Fiumicino)",
	"MXP": "Milão (Malpensa)",
	"NRT": "Tóquio (Narita)",
}

// airlineNames maps two-letter carrier codes to display names
var airlineNames = map[string]string{
	"G3": "GOL Linhas Aéreas",
	"LA": "LATAM Airlines",
	"AD": "Azul Linhas Aéreas",
	"2Z": "Voepass",
	"AA": "American Airlines",
	"DL": "Delta Air Lines",
	"UA": "United Airlines",
	"AF": "Air France",
	"KL": "KLM",
	"BA": "British Airways",
	"IB": "Iberia",
	"LH": "Lufthansa",
	"TP": "TAP Air Portugal",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"AR": "Aerolíneas Argentinas",
	"AV": "Avianca",
	"CM": "Copa Airlines",
	"AC": "Air Canada",
	"AZ": "ITA Airways",
	"LX": "Swiss",
	"NH": "ANA",
	"JL": "Japan Airlines",
	"QF": "Qantas",
}
