package seed

// Sample-data tables for local development and demos.

var carMakeModels = map[string][]string{
	"Toyota":        {"Camry", "Corolla", "RAV4", "Highlander", "Prius", "4Runner", "Tacoma", "Tundra"},
	"Honda":         {"Accord", "Civic", "CR-V", "Pilot", "Odyssey", "Ridgeline", "Passport", "HR-V"},
	"Ford":          {"F-150", "Explorer", "Edge", "Mustang", "Escape", "Bronco", "Ranger", "Expedition"},
	"Chevrolet":     {"Silverado", "Equinox", "Tahoe", "Suburban", "Malibu", "Traverse", "Camaro", "Blazer"},
	"BMW":           {"3 Series", "5 Series", "X5", "X3", "X7", "M3", "M5", "7 Series"},
	"Mercedes-Benz": {"C-Class", "E-Class", "S-Class", "GLE", "GLC", "GLS", "A-Class", "CLA"},
	"Audi":          {"A4", "Q5", "Q7", "A6", "Q3", "e-tron", "TT", "R8"},
	"Nissan":        {"Altima", "Sentra", "Rogue", "Pathfinder", "Maxima", "Murano", "Frontier", "Armada"},
	"Hyundai":       {"Elantra", "Sonata", "Tucson", "Santa Fe", "Palisade", "Kona", "Venue", "Accent"},
	"Mazda":         {"CX-5", "Mazda3", "CX-9", "CX-50", "MX-5", "Mazda6", "CX-30", "CX-3"},
	"Volkswagen":    {"Jetta", "Passat", "Atlas", "Tiguan", "Golf", "Arteon", "ID.4", "Touareg"},
	"Subaru":        {"Outback", "Forester", "Crosstrek", "Impreza", "Ascent", "Legacy", "WRX", "BRZ"},
	"Kia":           {"Sorento", "Telluride", "Optima", "Soul", "Sportage", "Carnival", "Forte", "Rio"},
	"Tesla":         {"Model 3", "Model Y", "Model S", "Model X"},
	"Volvo":         {"XC90", "XC60", "XC40", "S60", "S90", "V60", "V90"},
}

var carTypes = []string{
	"Sedan", "SUV", "Truck", "Sports Car", "Coupe",
	"Hatchback", "Minivan", "Crossover", "Convertible", "Wagon",
}

var makeToCountry = map[string]string{
	"Toyota":        "Japan",
	"Honda":         "Japan",
	"Nissan":        "Japan",
	"Mazda":         "Japan",
	"Subaru":        "Japan",
	"Ford":          "USA",
	"Chevrolet":     "USA",
	"Tesla":         "USA",
	"BMW":           "Germany",
	"Mercedes-Benz": "Germany",
	"Audi":          "Germany",
	"Volkswagen":    "Germany",
	"Hyundai":       "South Korea",
	"Kia":           "South Korea",
	"Volvo":         "Sweden",
}

var reviewPool = []struct {
	Text   string
	Rating int
}{
	{"Excellent fuel economy and extremely reliable. Great daily driver!", 5},
	{"Love the performance and handling. Perfect for my commute.", 5},
	{"Very comfortable ride and spacious interior. Family loves it!", 5},
	{"Outstanding reliability, no major issues after 3 years.", 5},
	{"Great value for the money. Modern features and good resale value.", 5},
	{"Smooth ride and excellent build quality. Highly recommend!", 5},
	{"Impressive safety features and technology. Peace of mind.", 5},
	{"Good overall, comfortable and efficient.", 4},
	{"Solid choice with decent features for the price.", 4},
	{"Enjoy it daily, reliable and functional.", 4},
	{"Good value, though the interior could be nicer.", 4},
	{"Works well for my needs, nothing special though.", 4},
	{"Average reliability and comfort. Gets the job done.", 3},
	{"Okay, but lacks some modern conveniences.", 3},
	{"Decent, but could be better for the price.", 3},
	{"Had some issues, reliability concerns.", 2},
	{"Higher upkeep costs than expected.", 2},
	{"Disappointing quality for the price.", 2},
	{"Constant problems. Avoid this one.", 1},
	{"Terrible value, regret the purchase completely.", 1},
}

var restaurantNames = []string{
	"Savory Bistro", "The Golden Fork", "Aroma Grill", "Spice Route",
	"Bella Cucina", "The Rustic Table", "Ocean's Catch", "Garden Terrace",
	"Smokehouse Junction", "The Velvet Spoon", "Urban Plates", "Harvest Moon",
	"Cedar & Sage", "The Copper Pot", "Juniper Kitchen", "Blue Flame Diner",
}

var restaurantCategories = []string{
	"Italian", "Chinese", "Japanese", "Mexican", "Indian",
	"Mediterranean", "American", "Thai", "French", "Korean",
}

var restaurantCities = []string{
	"New York", "Los Angeles", "Chicago", "San Francisco", "Austin",
	"Seattle", "Portland", "Denver", "Boston", "Miami",
}

var restaurantCountries = []string{
	"USA", "Canada", "UK", "France", "Italy", "Japan",
}
