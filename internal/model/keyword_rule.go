package model

// KeywordRule maps one category to the keywords that imply it. Rules are
// evaluated in slice order: the first category with a matching keyword wins,
// so the position of a rule in the table is part of its meaning.
type KeywordRule struct {
	Category Category
	Keywords []string
}

// DefaultKeywordRules returns the built-in rule table in its legacy priority
// order. Reordering entries changes which category wins when a description
// matches keywords from more than one of them.
func DefaultKeywordRules() []KeywordRule {
	return []KeywordRule{
		{
			Category: CategoryCafeRestaurant,
			Keywords: []string{
				"cafe", "coffee", "resto", "restaurant", "warung", "bistro",
				"bar", "eatery", "lounge", "kitchen", "grill", "bakery",
				"smoothie", "juice", "ice cream", "kopi", "makan", "minum",
				"dinner", "lunch", "breakfast", "brunch", "food", "drink",
				"tabu", "ohama", "nourish", "alchemy", "crumb and coaster",
				"my berry cafe", "winter cafe", "nectar bali", "tarragon",
				"sayah house", "bambu fitness", "st bernard", "folk ho",
				"brie", "bench brewery", "the loft", "living stone", "lolas",
				"islands foods", "la cima grun", "analog", "blacklist",
				"home of beyondmilk", "plantie's", "usha", "the bench brew",
				"good stuff", "one way espresso", "gusto resto",
			},
		},
		{
			Category: CategorySupermarket,
			Keywords: []string{
				"mart", "market", "supermarket", "grocery", "pepito",
				"fresh market", "minimarket", "ck", "circle k", "transmart",
				"sumber jaya", "nirmala", "ulu fish market", "bintang mart",
				"pepito express", "larissa", "murni teguh", "tabanan",
				"pepito market uluwatu",
			},
		},
		{
			Category: CategoryTransfers,
			Keywords: []string{
				"pb", "trf", "transfer", "payment", "bifast", "dari", "ke",
				"credit", "debit", "incoming", "outcoming", "valiakhm",
				"egorov", "grigoreva", "rachabova", "grigorev", "karymov",
				"zubkov", "novokshonov", "krivosheeva", "krisnawati",
				"susanto", "young", "dewi", "elliiana", "lintas batas",
				"rusmini", "linar valia", "byostrov", "gonsaga", "dmitrii",
				"madina", "kristina",
			},
		},
		{
			Category: CategoryBills,
			Keywords: []string{
				"pay pln", "pln", "bill payment", "biaya adm", "admin fee",
				"pajak", "tax", "sms notifikasi", "gopay", "netflix",
				"bpjamsostek",
			},
		},
		{
			Category: CategoryEntertainment,
			Keywords: []string{
				"waterbom", "cinema", "xxi", "movie", "club", "hookah",
				"vaporizer", "vape", "chapter", "ticket", "massage", "spa",
				"beauty", "hair", "steamgames", "playstation", "agoda",
				"airbnb", "surf", "barber", "tattoo", "skating", "eska bar",
				"waterbom bali", "eden hookah", "vape point", "snow cat",
				"asana artseum", "grab", "trip", "premiere", "deluxe",
			},
		},
		{
			Category: CategoryShopping,
			Keywords: []string{
				"shop", "store", "boutique", "uniqlo", "birkenstock",
				"whsmith", "ur mall", "gramedia", "shoppa roku", "adi shop",
			},
		},
		{
			Category: CategoryTourism,
			Keywords: []string{
				"beach", "hotel", "villa", "tour", "travel", "transport",
				"airport", "cruise", "sea", "scooter", "motor", "resort",
				"vacation", "surf villas", "beach club", "adi resto",
				"super airjet",
			},
		},
		{
			Category: CategoryAccommodations,
			Keywords: []string{
				"villa", "homestay", "guesthouse", "resort", "hotel",
				"nusa dua", "airbnb", "booking", "agoda", "pool", "bungalow",
				"retreat", "balinese style", "ocean view",
			},
		},
		{
			Category: CategoryGroceries,
			Keywords: []string{"minimart", "pepito", "bintang", "circle k"},
		},
		{
			Category: CategoryTransportation,
			Keywords: []string{
				"scooter", "motorbike", "rental", "gojek", "grab", "bluebird",
				"driver", "car hire", "shuttle", "airport transfer", "taxi",
				"surfboard rack", "petrol", "parking",
			},
		},
		{
			Category: CategoryWellness,
			Keywords: []string{
				"yoga", "meditation", "retreat", "spa", "massage",
				"aromatherapy", "jamu", "herbal tea", "detox",
				"sound healing", "reiki", "wellness center", "ubud yoga barn",
				"radiantly alive",
			},
		},
		{
			Category: CategoryHealth,
			Keywords: []string{
				"bambu fitness", "pharmacy", "apotek", "guardian", "clinic",
				"bali med", "siloam", "doctor", "dentist", "hospital",
				"vitamins", "sunscreen", "mosquito repellent", "bali rescue",
				"first aid",
			},
		},
		{
			Category: CategoryBeauty,
			Keywords: []string{
				"salon", "manicure", "pedicure", "haircut",
				"balinese hair spa", "facial", "waxing", "threading",
				"sensatia botanicals", "utama spice", "massage oil",
				"body scrub", "natural cosmetics",
			},
		},
		{
			Category: CategoryEducation,
			Keywords: []string{
				"cooking class", "balinese dance", "surf lesson",
				"yoga teacher training", "language course",
				"bahasa indonesia", "art workshop", "painting", "carving",
				"green school", "ubud class",
			},
		},
		{
			Category: CategoryHome,
			Keywords: []string{
				"furniture", "teak", "rattan", "home decor", "batik",
				"bamboo", "cleaning", "laundry", "warung laundry",
				"kitchenware", "coconut bowl", "bali zen", "saya gallery",
			},
		},
		{
			Category: CategoryPets,
			Keywords: []string{
				"pet shop", "vet", "bali pet crusaders", "dog food",
				"cat food", "treats", "grooming", "boarding", "bali dog",
				"rescue", "adoption", "leash", "collar", "pet taxi",
			},
		},
		{
			Category: CategoryEvents,
			Keywords: []string{
				"festival", "bali spirit", "nyepi", "concert", "beach party",
				"finns", "dance performance", "kecak", "barong", "wedding",
				"ceremony", "retreat", "ticket", "eventbrite", "local event",
			},
		},
		{
			Category: CategoryOnline,
			Keywords: []string{
				"tokopedia", "shopee", "lazada", "netflix", "spotify", "zoom",
				"e-book", "gojek app", "grab app", "internet", "sim card",
				"top-up",
			},
		},
		{
			Category: CategoryUtilities,
			Keywords: []string{
				"electricity", "pln", "prepaid token", "water", "pdam",
				"bottled water", "internet", "telkomsel", "biznet", "gas",
				"lpg", "refill", "trash", "maintenance", "villa fee",
			},
		},
	}
}
