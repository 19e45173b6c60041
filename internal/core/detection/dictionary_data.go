package detection

// curatedEntries 食材詞典，依序比對。
var curatedEntries = []Entry{
	// Vegetables: leafy greens
	mapped("kangkong", "Kangkong"),
	mapped("water spinach", "Kangkong"),
	mapped("swamp cabbage", "Kangkong"),
	mapped("pechay", "Pechay"),
	mapped("bok choy", "Pechay"),
	mapped("pak choi", "Pechay"),
	mapped("chinese cabbage", "Pechay"),
	mapped("mustard greens", "Mustasa"),
	mapped("mustasa", "Mustasa"),
	mapped("spinach", "Spinach"),
	mapped("malunggay", "Malunggay"),
	mapped("moringa", "Malunggay"),
	mapped("drumstick leaves", "Malunggay"),
	mapped("talbos ng kamote", "Talbos ng Kamote"),
	mapped("sweet potato leaves", "Talbos ng Kamote"),
	mapped("camote tops", "Talbos ng Kamote"),
	mapped("alugbati", "Alugbati"),
	mapped("malabar spinach", "Alugbati"),
	mapped("saluyot", "Saluyot"),
	mapped("jute leaves", "Saluyot"),
	mapped("lettuce", "Lettuce"),

	// Root vegetables
	mapped("carrot", "Carrot"),
	mapped("carrots", "Carrot"),
	mapped("potato", "Potato"),
	mapped("potatoes", "Potato"),
	mapped("kamote", "Kamote"),
	mapped("sweet potato", "Kamote"),
	mapped("gabi", "Gabi"),
	mapped("taro", "Gabi"),
	mapped("taro root", "Gabi"),
	mapped("ube", "Ube"),
	mapped("purple yam", "Ube"),
	mapped("singkamas", "Singkamas"),
	mapped("jicama", "Singkamas"),
	mapped("turnip", "Singkamas"),
	mapped("radish", "Labanos"),
	mapped("labanos", "Labanos"),
	mapped("daikon", "Labanos"),

	// Gourds & squash
	mapped("kalabasa", "Kalabasa"),
	mapped("squash", "Kalabasa"),
	mapped("pumpkin", "Kalabasa"),
	mapped("butternut squash", "Kalabasa"),
	mapped("upo", "Upo"),
	mapped("bottle gourd", "Upo"),
	mapped("patola", "Patola"),
	mapped("sponge gourd", "Patola"),
	mapped("luffa", "Patola"),
	mapped("ampalaya", "Ampalaya"),
	mapped("bitter melon", "Ampalaya"),
	mapped("bitter gourd", "Ampalaya"),
	mapped("sayote", "Sayote"),
	mapped("chayote", "Sayote"),

	// Beans & pods
	mapped("sitaw", "Sitaw"),
	mapped("string beans", "Sitaw"),
	mapped("yard long beans", "Sitaw"),
	mapped("long beans", "Sitaw"),
	mapped("green beans", "Green Beans"),
	mapped("bataw", "Bataw"),
	mapped("hyacinth bean", "Bataw"),
	mapped("okra", "Okra"),
	mapped("lady finger", "Okra"),
	mapped("talong", "Talong"),
	mapped("eggplant", "Talong"),
	mapped("aubergine", "Talong"),

	// Peppers
	mapped("bell pepper", "Bell Pepper"),
	mapped("capsicum", "Bell Pepper"),
	mapped("sili", "Siling Labuyo"),
	mapped("chili", "Siling Labuyo"),
	mapped("chili pepper", "Siling Labuyo"),
	mapped("siling labuyo", "Siling Labuyo"),
	mapped("bird eye chili", "Siling Labuyo"),
	mapped("siling haba", "Siling Haba"),
	mapped("long pepper", "Siling Haba"),
	mapped("finger chili", "Siling Haba"),

	// Alliums
	mapped("onion", "Onion"),
	mapped("onions", "Onion"),
	mapped("sibuyas", "Onion"),
	mapped("red onion", "Red Onion"),
	mapped("shallot", "Shallots"),
	mapped("shallots", "Shallots"),
	mapped("spring onion", "Spring Onion"),
	mapped("green onion", "Spring Onion"),
	mapped("scallion", "Spring Onion"),
	mapped("leeks", "Leeks"),
	mapped("leek", "Leeks"),
	mapped("garlic", "Garlic"),
	mapped("bawang", "Garlic"),

	// Other vegetables
	mapped("tomato", "Tomato"),
	mapped("tomatoes", "Tomato"),
	mapped("kamatis", "Tomato"),
	mapped("cabbage", "Cabbage"),
	mapped("repolyo", "Cabbage"),
	mapped("cucumber", "Cucumber"),
	mapped("pipino", "Cucumber"),
	mapped("corn", "Corn"),
	mapped("mais", "Corn"),
	mapped("baby corn", "Baby Corn"),
	mapped("bamboo shoots", "Bamboo Shoots"),
	mapped("labong", "Bamboo Shoots"),
	mapped("mushroom", "Button Mushrooms"),
	mapped("mushrooms", "Button Mushrooms"),
	mapped("button mushroom", "Button Mushrooms"),
	mapped("shiitake", "Shiitake Mushrooms"),
	mapped("oyster mushroom", "Oyster Mushrooms"),
	mapped("bean sprouts", "Togue"),
	mapped("togue", "Togue"),
	mapped("mung bean sprouts", "Togue"),
	mapped("ginger", "Ginger"),
	mapped("luya", "Ginger"),

	// Proteins - Meat: chicken
	mapped("chicken", "Chicken"),
	mapped("chicken breast", "Chicken Breast"),
	mapped("chicken thigh", "Chicken Thigh"),
	mapped("chicken leg", "Chicken Leg"),
	mapped("chicken drumstick", "Chicken Drumstick"),
	mapped("chicken wing", "Chicken Wings"),
	mapped("chicken wings", "Chicken Wings"),
	mapped("chicken liver", "Chicken Liver"),
	mapped("chicken gizzard", "Chicken Gizzard"),

	// Pork
	mapped("pork", "Pork"),
	mapped("pork belly", "Pork Belly"),
	mapped("liempo", "Pork Belly"),
	mapped("pork shoulder", "Pork Shoulder"),
	mapped("kasim", "Pork Shoulder"),
	mapped("pork loin", "Pork Loin"),
	mapped("pork chop", "Pork Chops"),
	mapped("pork chops", "Pork Chops"),
	mapped("pork ribs", "Pork Ribs"),
	mapped("spare ribs", "Pork Ribs"),
	mapped("ground pork", "Ground Pork"),
	mapped("pork liver", "Pork Liver"),
	mapped("pigs blood", "Pork Blood"),
	mapped("pork blood", "Pork Blood"),
	mapped("dinuguan", "Pork Blood"),
	mapped("pork hock", "Pork Hock"),
	mapped("pata", "Pork Hock"),
	mapped("pork knuckle", "Pork Hock"),
	mapped("pork ear", "Pork Ears"),
	mapped("pork ears", "Pork Ears"),
	mapped("pork intestine", "Pork Intestines"),
	mapped("isaw baboy", "Pork Intestines"),
	mapped("chicharon", "Chicharon"),
	mapped("pork crackling", "Chicharon"),
	mapped("pork rinds", "Chicharon"),

	// Beef
	mapped("beef", "Beef"),
	mapped("beef brisket", "Beef Brisket"),
	mapped("beef shank", "Beef Shank"),
	mapped("bulalo", "Beef Shank"),
	mapped("beef sirloin", "Beef Sirloin"),
	mapped("beef tenderloin", "Beef Tenderloin"),
	mapped("ground beef", "Ground Beef"),
	mapped("beef liver", "Beef Liver"),
	mapped("beef tripe", "Beef Tripe"),
	mapped("goto", "Beef Tripe"),
	mapped("oxtail", "Oxtail"),
	mapped("ox tail", "Oxtail"),

	// Other meats
	mapped("longganisa", "Longganisa"),
	mapped("longaniza", "Longganisa"),
	mapped("sausage", "Longganisa"),
	mapped("tocino", "Tocino"),
	mapped("tapa", "Tapa"),
	mapped("dried beef", "Tapa"),
	mapped("chorizo", "Chorizo de Bilbao"),
	mapped("ham", "Ham"),

	// Proteins - Seafood: fish
	mapped("fish", "Tilapia"),
	mapped("tilapia", "Tilapia"),
	mapped("bangus", "Bangus"),
	mapped("milkfish", "Bangus"),
	mapped("galunggong", "Galunggong"),
	mapped("round scad", "Galunggong"),
	mapped("tulingan", "Tulingan"),
	mapped("tuna", "Tuna"),
	mapped("skipjack", "Tulingan"),
	mapped("tanigue", "Tanigue"),
	mapped("spanish mackerel", "Tanigue"),
	mapped("salmon", "Salmon"),
	mapped("dilis", "Dilis"),
	mapped("anchovies", "Dilis"),
	mapped("anchovy", "Dilis"),
	mapped("dried fish", "Tuyo"),
	mapped("tuyo", "Tuyo"),
	mapped("tinapa", "Tinapa"),
	mapped("smoked fish", "Tinapa"),
	mapped("daing", "Daing"),
	mapped("salted fish", "Daing"),

	// Shellfish & crustaceans
	mapped("shrimp", "Shrimp"),
	mapped("hipon", "Shrimp"),
	mapped("prawn", "Shrimp"),
	mapped("prawns", "Shrimp"),
	mapped("crab", "Crab"),
	mapped("alimango", "Crab"),
	mapped("mud crab", "Crab"),
	mapped("lobster", "Lobster"),
	mapped("squid", "Squid"),
	mapped("pusit", "Squid"),
	mapped("calamari", "Squid"),
	mapped("mussel", "Mussels"),
	mapped("mussels", "Mussels"),
	mapped("tahong", "Mussels"),
	mapped("clam", "Clams"),
	mapped("clams", "Clams"),
	mapped("halaan", "Clams"),
	mapped("oyster", "Oysters"),
	mapped("oysters", "Oysters"),
	mapped("talaba", "Oysters"),

	// Eggs & Dairy
	mapped("egg", "Eggs"),
	mapped("eggs", "Eggs"),
	mapped("itlog", "Eggs"),
	mapped("chicken egg", "Eggs"),
	mapped("salted egg", "Salted Egg"),
	mapped("itlog na maalat", "Salted Egg"),
	mapped("century egg", "Century Egg"),
	mapped("balut", "Balut"),
	mapped("duck egg", "Balut"),
	mapped("quail egg", "Quail Eggs"),
	mapped("quail eggs", "Quail Eggs"),
	mapped("milk", "Fresh Milk"),
	mapped("fresh milk", "Fresh Milk"),
	mapped("evaporated milk", "Evaporated Milk"),
	mapped("condensed milk", "Condensed Milk"),
	mapped("coconut milk", "Coconut Milk"),
	mapped("gata", "Coconut Milk"),
	mapped("coconut cream", "Coconut Cream"),
	mapped("cheese", "Cheese"),
	mapped("kesong puti", "Kesong Puti"),
	mapped("white cheese", "Kesong Puti"),
	mapped("butter", "Butter"),
	mapped("margarine", "Margarine"),

	// Grains & Starches
	mapped("rice", "Rice"),
	mapped("bigas", "Rice"),
	mapped("jasmine rice", "Jasmine Rice"),
	mapped("glutinous rice", "Glutinous Rice"),
	mapped("malagkit", "Glutinous Rice"),
	mapped("sticky rice", "Glutinous Rice"),
	mapped("brown rice", "Brown Rice"),
	mapped("flour", "All-Purpose Flour"),
	mapped("all purpose flour", "All-Purpose Flour"),
	mapped("bread flour", "Bread Flour"),
	mapped("rice flour", "Rice Flour"),
	mapped("cornstarch", "Cornstarch"),
	mapped("corn starch", "Cornstarch"),
	mapped("tapioca", "Tapioca Pearls"),
	mapped("sago", "Sago"),
	mapped("bread", "Pandesal"),
	mapped("pandesal", "Pandesal"),
	mapped("bread roll", "Pandesal"),
	mapped("noodles", "Pancit Canton"),
	mapped("pancit", "Pancit Canton"),
	mapped("canton noodles", "Pancit Canton"),
	mapped("bihon", "Bihon"),
	mapped("rice noodles", "Bihon"),
	mapped("vermicelli", "Bihon"),
	mapped("sotanghon", "Sotanghon"),
	mapped("glass noodles", "Sotanghon"),
	mapped("cellophane noodles", "Sotanghon"),
	mapped("miki", "Fresh Miki"),
	mapped("fresh noodles", "Fresh Miki"),
	mapped("pasta", "Spaghetti"),
	mapped("spaghetti", "Spaghetti"),

	// Legumes
	mapped("mung beans", "Mung Beans"),
	mapped("monggo", "Mung Beans"),
	mapped("munggo", "Mung Beans"),
	mapped("green gram", "Mung Beans"),
	mapped("kidney beans", "Red Kidney Beans"),
	mapped("red beans", "Red Kidney Beans"),
	mapped("white beans", "White Beans"),
	mapped("black beans", "Black Beans"),
	mapped("chickpeas", "Chickpeas"),
	mapped("garbanzo", "Chickpeas"),
	mapped("peanuts", "Peanuts"),
	mapped("mani", "Peanuts"),
	mapped("peanut", "Peanuts"),
	mapped("cashew", "Cashews"),
	mapped("cashews", "Cashews"),
	mapped("kasoy", "Cashews"),
	mapped("tofu", "Tofu"),
	mapped("tokwa", "Tofu"),
	mapped("bean curd", "Tofu"),

	// Condiments & Sauces
	mapped("soy sauce", "Soy Sauce"),
	mapped("toyo", "Soy Sauce"),
	mapped("vinegar", "Cane Vinegar"),
	mapped("suka", "Cane Vinegar"),
	mapped("fish sauce", "Fish Sauce"),
	mapped("patis", "Fish Sauce"),
	mapped("bagoong", "Bagoong"),
	mapped("shrimp paste", "Bagoong"),
	mapped("bagoong alamang", "Bagoong Alamang"),
	mapped("oyster sauce", "Oyster Sauce"),
	mapped("ketchup", "Banana Ketchup"),
	mapped("banana ketchup", "Banana Ketchup"),
	mapped("tomato sauce", "Tomato Sauce"),
	mapped("tomato paste", "Tomato Paste"),
	mapped("calamansi", "Calamansi"),
	mapped("calamondin", "Calamansi"),
	mapped("philippine lime", "Calamansi"),
	mapped("lemon", "Lemon"),
	mapped("lime", "Lime"),
	mapped("tamarind", "Tamarind"),
	mapped("sampalok", "Tamarind"),
	mapped("annatto", "Annatto Seeds"),
	mapped("atsuete", "Annatto Seeds"),
	mapped("achuete", "Annatto Seeds"),
	mapped("mayonnaise", "Mayonnaise"),
	mapped("mustard", "Mustard"),

	// Spices & Herbs
	mapped("bay leaf", "Bay Leaves"),
	mapped("bay leaves", "Bay Leaves"),
	mapped("laurel", "Bay Leaves"),
	mapped("black pepper", "Black Pepper"),
	mapped("pepper", "Black Pepper"),
	mapped("peppercorn", "Whole Peppercorns"),
	mapped("peppercorns", "Whole Peppercorns"),
	mapped("salt", "Salt"),
	mapped("sugar", "White Sugar"),
	mapped("white sugar", "White Sugar"),
	mapped("brown sugar", "Brown Sugar"),
	mapped("muscovado", "Muscovado Sugar"),
	mapped("palm sugar", "Coconut Sugar"),
	mapped("coconut sugar", "Coconut Sugar"),
	mapped("paprika", "Paprika"),
	mapped("cumin", "Cumin"),
	mapped("turmeric", "Turmeric"),
	mapped("luyang dilaw", "Turmeric"),
	mapped("cinnamon", "Cinnamon"),
	mapped("star anise", "Star Anise"),
	mapped("cloves", "Cloves"),
	mapped("nutmeg", "Nutmeg"),
	mapped("oregano", "Oregano"),
	mapped("basil", "Basil"),
	mapped("cilantro", "Cilantro"),
	mapped("coriander", "Cilantro"),
	mapped("wansoy", "Cilantro"),
	mapped("parsley", "Parsley"),
	mapped("lemongrass", "Lemongrass"),
	mapped("tanglad", "Lemongrass"),
	mapped("pandan", "Pandan Leaves"),
	mapped("pandan leaves", "Pandan Leaves"),
	mapped("screwpine", "Pandan Leaves"),

	// Fruits
	mapped("banana", "Saba Banana"),
	mapped("saba", "Saba Banana"),
	mapped("plantain", "Saba Banana"),
	mapped("lakatan", "Lakatan Banana"),
	mapped("latundan", "Latundan Banana"),
	mapped("mango", "Mango"),
	mapped("mangga", "Mango"),
	mapped("green mango", "Green Mango"),
	mapped("unripe mango", "Green Mango"),
	mapped("papaya", "Papaya"),
	mapped("green papaya", "Green Papaya"),
	mapped("pineapple", "Pineapple"),
	mapped("pinya", "Pineapple"),
	mapped("coconut", "Coconut"),
	mapped("niyog", "Coconut"),
	mapped("young coconut", "Buko"),
	mapped("buko", "Buko"),
	mapped("dayap", "Dayap"),
	mapped("key lime", "Dayap"),
	mapped("suha", "Pomelo"),
	mapped("pomelo", "Pomelo"),
	mapped("atis", "Atis"),
	mapped("sugar apple", "Atis"),
	mapped("guyabano", "Guyabano"),
	mapped("soursop", "Guyabano"),
	mapped("langka", "Langka"),
	mapped("jackfruit", "Langka"),
	mapped("rambutan", "Rambutan"),
	mapped("lanzones", "Lanzones"),
	mapped("durian", "Durian"),
	mapped("santol", "Santol"),
	mapped("guava", "Guava"),
	mapped("bayabas", "Guava"),
	mapped("watermelon", "Watermelon"),
	mapped("pakwan", "Watermelon"),
	mapped("melon", "Melon"),
	mapped("apple", "Apple"),
	mapped("orange", "Orange"),
	mapped("grapes", "Grapes"),
	mapped("grape", "Grapes"),

	// Canned Goods
	mapped("corned beef", "Corned Beef"),
	mapped("spam", "Luncheon Meat"),
	mapped("luncheon meat", "Luncheon Meat"),
	mapped("sardines", "Sardines"),
	mapped("sardine", "Sardines"),
	mapped("canned tuna", "Canned Tuna"),
	mapped("tuna flakes", "Canned Tuna"),
	mapped("canned coconut cream", "Canned Coconut Cream"),

	// Cooking Oils & Fats
	mapped("cooking oil", "Cooking Oil"),
	mapped("vegetable oil", "Cooking Oil"),
	mapped("coconut oil", "Coconut Oil"),
	mapped("olive oil", "Olive Oil"),
	mapped("sesame oil", "Sesame Oil"),
	mapped("lard", "Lard"),
	mapped("mantika", "Lard"),

	// General terms (excluded)
	suppressed("vegetable"),
	suppressed("food"),
	suppressed("ingredient"),
	suppressed("produce"),
	suppressed("meat"),
	suppressed("dish"),
	suppressed("meal"),
	suppressed("cuisine"),
}
