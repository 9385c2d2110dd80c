package mockapi

// SampleRecords returns demo data. The records deliberately mix the field spellings the
// hosted backend has accumulated so the client's normalization is exercised.
func SampleRecords() []Record {
	return []Record{
		{
			"id":                "1",
			"food_name":         "Bowl Lasagna",
			"food_rating":       4.6,
			"Price":             "2.99",
			"food_image":        "/img/bowl_lasagna.png",
			"restaurant_name":   "Cheesecake Factory",
			"avatar":            "/logo/cheesecake_factory.png",
			"restaurant_status": "Open Now",
			"createdAt":         "2025-06-17T10:12:00Z",
		},
		{
			"id":         "2",
			"name":       "Mixed Avocado Smoothie",
			"rating":     "4.0",
			"price":      "5.99",
			"food_image": "/img/avocado_smoothie.png",
			"logo":       "/logo/smoothie_bar.png",
			"open":       false,
			"createdAt":  "2025-06-17T11:40:00Z",
		},
		{
			"id":               "3",
			"food_name":        "Pancake",
			"name":             "Fresh Breakfast",
			"food_rating":      5,
			"Price":            "1.99",
			"food_image":       "/img/pancake.png",
			"restaurant_image": "/logo/fresh_breakfast.png",
			"open":             true,
			"createdAt":        "2025-06-18T07:05:00Z",
		},
		{
			"id":                "4",
			"food_name":         "Cupcake",
			"food_rating":       3.8,
			"food_image":        "",
			"restaurant_name":   "Sweet Corner",
			"restaurant_status": "Closed",
			"createdAt":         "2025-06-18T15:30:00Z",
		},
		{
			"id":                "5",
			"food_name":         "Creamy Stake",
			"food_rating":       4.2,
			"Price":             "9.49",
			"food_image":        "/img/missing_steak.png",
			"restaurant_name":   "Grill House",
			"avatar":            "/logo/grill_house.png",
			"restaurant_status": "Open Now",
			"createdAt":         "2025-06-19T19:45:00Z",
		},
		{
			"id":              "6",
			"food_name":       "Steak With Potatoes",
			"Price":           "15.99",
			"food_image":      "/img/steak_potatoes.png",
			"restaurant_name": "Grill House",
			"avatar":          "/logo/grill_house.png",
			"createdAt":       "2025-06-20T20:10:00Z",
		},
	}
}
