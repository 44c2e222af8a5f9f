package units

import "strings"

// Profile describes how a canonical ingredient is shopped for and stored.
type Profile struct {
	Category      string `yaml:"category" json:"category"`
	DefaultUnit   string `yaml:"default_unit" json:"defaultUnit"`
	Perishable    bool   `yaml:"perishable" json:"perishable"`
	ShelfLifeDays int    `yaml:"shelf_life_days" json:"shelfLifeDays"`
}

// Ingredient categories used by the profile table.
const (
	CategoryBaking    = "baking"
	CategoryDairy     = "dairy"
	CategoryProduce   = "produce"
	CategoryMeat      = "meat"
	CategorySeafood   = "seafood"
	CategoryPantry    = "pantry"
	CategorySpice     = "spice"
	CategoryCondiment = "condiment"
	CategoryGrain     = "grain"
	CategoryNut       = "nut"
	CategoryOther     = "other"
)

// defaultDensities holds grams per 240 ml cup, keyed by canonical name.
var defaultDensities = map[string]float64{
	"all-purpose flour": 120,
	"bread flour":       127,
	"whole wheat flour": 120,
	"cake flour":        114,
	"self-rising flour": 120,
	"cornmeal":          138,
	"cornstarch":        128,
	"sugar":             200,
	"brown sugar":       220,
	"powdered sugar":    120,
	"butter":            227,
	"margarine":         227,
	"shortening":        205,
	"milk":              245,
	"buttermilk":        245,
	"heavy cream":       238,
	"sour cream":        230,
	"plain yogurt":      245,
	"cream cheese":      232,
	"water":             237,
	"chicken broth":     240,
	"beef broth":        240,
	"vegetable broth":   240,
	"olive oil":         216,
	"vegetable oil":     218,
	"honey":             340,
	"maple syrup":       315,
	"molasses":          328,
	"peanut butter":     258,
	"mayonnaise":        220,
	"ketchup":           240,
	"salt":              292,
	"baking soda":       230,
	"baking powder":     192,
	"cocoa powder":      85,
	"chocolate chips":   170,
	"rolled oats":       90,
	"white rice":        185,
	"brown rice":        190,
	"raisins":           150,
	"walnuts":           120,
	"pecans":            110,
	"almonds":           143,
	"shredded coconut":  85,
	"cheddar cheese":    113,
	"parmesan cheese":   100,
	"mozzarella cheese": 113,
	"breadcrumbs":       108,
	"grated carrot":     110,
	"frozen peas":       134,
	"dry lentils":       192,
	"granola":           122,
	"vanilla extract":   208,
	"soy sauce":         255,
	"lemon juice":       244,
	"tomato sauce":      245,
	"crushed tomatoes":  242,
	"diced tomatoes":    240,
	"black beans":       172,
	"kidney beans":      177,
	"chickpeas":         164,
	"onion":             160,
	"celery":            101,
	"green bell pepper": 149,
	"red bell pepper":   149,
	"mushrooms":         70,
	"spinach":           30,
	"parsley":           60,
	"cilantro":          16,
	"basil":             24,

	"graham cracker crumbs": 84,
}

// defaultProfiles is keyed by canonical name.
var defaultProfiles = map[string]Profile{
	"all-purpose flour": {CategoryBaking, Grams, false, 365},
	"bread flour":       {CategoryBaking, Grams, false, 365},
	"whole wheat flour": {CategoryBaking, Grams, false, 180},
	"sugar":             {CategoryBaking, Grams, false, 730},
	"brown sugar":       {CategoryBaking, Grams, false, 730},
	"powdered sugar":    {CategoryBaking, Grams, false, 730},
	"baking soda":       {CategoryBaking, Grams, false, 730},
	"baking powder":     {CategoryBaking, Grams, false, 365},
	"vanilla extract":   {CategoryBaking, Milliliters, false, 1460},
	"cocoa powder":      {CategoryBaking, Grams, false, 730},
	"chocolate chips":   {CategoryBaking, Grams, false, 365},
	"cornstarch":        {CategoryBaking, Grams, false, 730},

	"butter":            {CategoryDairy, Grams, true, 30},
	"milk":              {CategoryDairy, Milliliters, true, 7},
	"buttermilk":        {CategoryDairy, Milliliters, true, 14},
	"heavy cream":       {CategoryDairy, Milliliters, true, 10},
	"sour cream":        {CategoryDairy, Grams, true, 14},
	"plain yogurt":      {CategoryDairy, Grams, true, 14},
	"cream cheese":      {CategoryDairy, Grams, true, 21},
	"cheddar cheese":    {CategoryDairy, Grams, true, 30},
	"parmesan cheese":   {CategoryDairy, Grams, true, 60},
	"mozzarella cheese": {CategoryDairy, Grams, true, 21},
	"egg":               {CategoryDairy, Pieces, true, 28},

	"onion":             {CategoryProduce, Pieces, true, 30},
	"garlic":            {CategoryProduce, Pieces, true, 90},
	"green onion":       {CategoryProduce, Pieces, true, 7},
	"carrot":            {CategoryProduce, Pieces, true, 21},
	"celery":            {CategoryProduce, Pieces, true, 14},
	"potato":            {CategoryProduce, Pieces, true, 30},
	"tomato":            {CategoryProduce, Pieces, true, 7},
	"lemon":             {CategoryProduce, Pieces, true, 21},
	"lime":              {CategoryProduce, Pieces, true, 21},
	"lemon juice":       {CategoryProduce, Milliliters, true, 5},
	"green bell pepper": {CategoryProduce, Pieces, true, 10},
	"red bell pepper":   {CategoryProduce, Pieces, true, 10},
	"mushrooms":         {CategoryProduce, Grams, true, 7},
	"spinach":           {CategoryProduce, Grams, true, 5},
	"parsley":           {CategoryProduce, Grams, true, 7},
	"cilantro":          {CategoryProduce, Grams, true, 7},
	"basil":             {CategoryProduce, Grams, true, 5},
	"ginger":            {CategoryProduce, Grams, true, 21},

	"chicken breast": {CategoryMeat, Grams, true, 2},
	"chicken":        {CategoryMeat, Grams, true, 2},
	"ground beef":    {CategoryMeat, Grams, true, 2},
	"bacon":          {CategoryMeat, Grams, true, 7},
	"pork chops":     {CategoryMeat, Grams, true, 3},
	"shrimp":         {CategorySeafood, Grams, true, 2},
	"salmon":         {CategorySeafood, Grams, true, 2},

	"olive oil":        {CategoryPantry, Milliliters, false, 540},
	"vegetable oil":    {CategoryPantry, Milliliters, false, 365},
	"chicken broth":    {CategoryPantry, Milliliters, false, 365},
	"beef broth":       {CategoryPantry, Milliliters, false, 365},
	"diced tomatoes":   {CategoryPantry, Grams, false, 540},
	"crushed tomatoes": {CategoryPantry, Grams, false, 540},
	"tomato sauce":     {CategoryPantry, Grams, false, 540},
	"tomato paste":     {CategoryPantry, Grams, false, 540},
	"black beans":      {CategoryPantry, Grams, false, 730},
	"kidney beans":     {CategoryPantry, Grams, false, 730},
	"chickpeas":        {CategoryPantry, Grams, false, 730},
	"honey":            {CategoryPantry, Milliliters, false, 1460},
	"maple syrup":      {CategoryPantry, Milliliters, false, 365},
	"peanut butter":    {CategoryPantry, Grams, false, 180},
	"water":            {CategoryPantry, Milliliters, false, 0},

	"salt":              {CategorySpice, Grams, false, 1825},
	"black pepper":      {CategorySpice, Grams, false, 1095},
	"cinnamon":          {CategorySpice, Grams, false, 1095},
	"cumin":             {CategorySpice, Grams, false, 1095},
	"paprika":           {CategorySpice, Grams, false, 1095},
	"chili powder":      {CategorySpice, Grams, false, 1095},
	"oregano":           {CategorySpice, Grams, false, 1095},
	"nutmeg":            {CategorySpice, Grams, false, 1095},
	"red pepper flakes": {CategorySpice, Grams, false, 1095},

	"soy sauce":            {CategoryCondiment, Milliliters, false, 730},
	"worcestershire sauce": {CategoryCondiment, Milliliters, false, 730},
	"mayonnaise":           {CategoryCondiment, Grams, true, 60},
	"ketchup":              {CategoryCondiment, Grams, false, 180},
	"dijon mustard":        {CategoryCondiment, Grams, false, 365},
	"balsamic vinegar":     {CategoryCondiment, Milliliters, false, 1095},
	"white vinegar":        {CategoryCondiment, Milliliters, false, 1825},

	"white rice":  {CategoryGrain, Grams, false, 730},
	"brown rice":  {CategoryGrain, Grams, false, 180},
	"spaghetti":   {CategoryGrain, Grams, false, 730},
	"pasta":       {CategoryGrain, Grams, false, 730},
	"bread":       {CategoryGrain, Pieces, true, 7},
	"rolled oats": {CategoryGrain, Grams, false, 365},
	"breadcrumbs": {CategoryGrain, Grams, false, 180},

	"walnuts": {CategoryNut, Grams, false, 180},
	"pecans":  {CategoryNut, Grams, false, 180},
	"almonds": {CategoryNut, Grams, false, 365},
}

// Profile returns the profile of a canonical ingredient name.
func (c *Converter) Profile(ingredient string) (Profile, bool) {
	p, ok := c.profiles[strings.ToLower(strings.TrimSpace(ingredient))]
	return p, ok
}

// LookupProfile returns the built-in profile of a canonical ingredient name.
func LookupProfile(ingredient string) (Profile, bool) {
	return defaultConverter.Profile(ingredient)
}
