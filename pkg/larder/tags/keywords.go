package tags

// Built-in keyword lists. Order is significant: outputs follow it where the
// tag order does not decide, and category groups are tried top to bottom.

var defaultCuisines = []string{
	"italian",
	"mexican",
	"chinese",
	"japanese",
	"thai",
	"vietnamese",
	"korean",
	"indian",
	"french",
	"greek",
	"spanish",
	"german",
	"irish",
	"english",
	"scandinavian",
	"mediterranean",
	"middle-eastern",
	"moroccan",
	"african",
	"caribbean",
	"cajun",
	"creole",
	"southwestern",
	"tex-mex",
	"southern",
	"american",
	"canadian",
	"brazilian",
	"asian",
}

var defaultDietary = []string{
	"vegan",
	"vegetarian",
	"gluten-free",
	"dairy-free",
	"egg-free",
	"nut-free",
	"low-carb",
	"low-fat",
	"low-sodium",
	"low-cholesterol",
	"low-calorie",
	"high-protein",
	"high-fiber",
	"kosher",
	"diabetic",
	"healthy",
}

var defaultCategories = []CategoryGroup{
	{Name: "breakfast", Keywords: []string{"breakfast", "brunch"}},
	{Name: "lunch", Keywords: []string{"lunch", "sandwiches"}},
	{Name: "dinner", Keywords: []string{"dinner", "main-dish", "entree"}},
	{Name: "dessert", Keywords: []string{"dessert", "cakes", "cookies-and-brownies", "pies"}},
	{Name: "appetizer", Keywords: []string{"appetizer", "snacks", "finger-food", "dips"}},
	{Name: "side", Keywords: []string{"side-dishes", "side"}},
	{Name: "soup", Keywords: []string{"soup", "stew", "chowders"}},
	{Name: "salad", Keywords: []string{"salad"}},
	{Name: "beverage", Keywords: []string{"beverage", "drinks", "cocktails", "smoothies", "shakes"}},
}

var defaultLongCook = []string{
	"crock-pot",
	"slow-cooker",
	"4-hours",
}

// defaultMethods are cooking-method and style tags, kept ahead of dish types.
var defaultMethods = []string{
	"quick",
	"easy",
	"one-pot",
	"one-dish-meal",
	"no-cook",
	"make-ahead",
	"crock-pot-slow-cooker",
	"grilling",
	"barbecue",
	"baking",
	"roast",
	"stir-fry",
	"stove-top",
	"oven",
	"microwave",
	"freezer",
	"kid-friendly",
	"comfort-food",
	"weeknight",
}

// defaultDishTypes are dish-type tags.
var defaultDishTypes = []string{
	"soups-stews",
	"soup",
	"stews",
	"salads",
	"salad",
	"pasta",
	"casseroles",
	"sandwiches",
	"pizza",
	"curries",
	"chili",
	"tacos",
	"burgers",
	"meatballs",
	"pies",
	"cakes",
	"cookies-and-brownies",
	"breads",
	"muffins",
	"pancakes-and-waffles",
	"omelets-and-frittatas",
}

// defaultMeta are tags that describe the corpus rather than the dish.
var defaultMeta = []string{
	"time-to-make",
	"course",
	"main-ingredient",
	"preparation",
	"occasion",
	"equipment",
	"cuisine",
	"dietary",
	"number-of-servings",
	"technique",
	"taste-mood",
	"main-dish",
	"north-american",
	"1-day-or-more",
	"oamc-freezer-make-ahead",
	"to-go",
	"inexpensive",
}
