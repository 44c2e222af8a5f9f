package lexicon

type builtinRule struct {
	pattern   string
	canonical string
}

// builtinRules is evaluated top to bottom against the stripped phrase.
// Order matters: specific phrases ("garlic powder", "red onion") must come
// before the broader pattern they would otherwise fall into.
var builtinRules = []builtinRule{
	// eggs
	{`(?:large |medium |small |extra[- ]large |jumbo )?egg whites?`, "egg white"},
	{`(?:large |medium |small |extra[- ]large |jumbo )?egg yolks?`, "egg yolk"},
	{`(?:large |medium |small |extra[- ]large |jumbo |hard[- ]boiled )?eggs?`, "egg"},

	// garlic and onions
	{`garlic powder`, "garlic powder"},
	{`garlic salt`, "garlic salt"},
	{`(?:fresh )?garlic(?: cloves?| bulb)?|cloves? (?:of )?garlic`, "garlic"},
	{`onion powder`, "onion powder"},
	{`(?:dried )?(?:minced )?onion flakes`, "onion flakes"},
	{`red onions?`, "red onion"},
	{`green onions?|scallions?|spring onions?`, "green onion"},
	{`(?:yellow |white |sweet |spanish |vidalia |large |medium |small )?onions?`, "onion"},
	{`shallots?`, "shallot"},

	// flour
	{`(?:whole[- ]wheat|wholemeal) flour`, "whole wheat flour"},
	{`bread flour`, "bread flour"},
	{`cake flour`, "cake flour"},
	{`self[- ]ra?ising flour`, "self-rising flour"},
	{`(?:unbleached )?(?:all[- ]purpose|plain|white)(?: white)? flour|flour`, "all-purpose flour"},

	// sugar
	{`(?:light |dark )?(?:packed )?brown sugar`, "brown sugar"},
	{`(?:powdered|confectioners'?|icing) sugar`, "powdered sugar"},
	{`(?:white |granulated |white granulated |caster |superfine )?sugar`, "sugar"},

	// salt and pepper
	{`salt (?:and|&) (?:black )?pepper`, "salt and pepper"},
	{`(?:table |kosher |sea |coarse |fine )?salt`, "salt"},
	{`(?:crushed )?red pepper flakes|red chil[ei] flakes|crushed red pepper`, "red pepper flakes"},
	{`cayenne(?: pepper)?`, "cayenne pepper"},
	{`(?:fresh |freshly )?(?:ground |cracked )?black pepper|pepper|black peppercorns`, "black pepper"},

	// dairy
	{`buttermilk`, "buttermilk"},
	{`(?:unsalted |salted |sweet cream )?butter`, "butter"},
	{`(?:whole |skim |low[- ]fat |fat[- ]free |2% |1% )?milk`, "milk"},
	{`(?:heavy|heavy whipping|whipping|double) cream`, "heavy cream"},
	{`(?:light |low[- ]fat |reduced[- ]fat )?sour cream`, "sour cream"},
	{`(?:light |low[- ]fat |reduced[- ]fat )?cream cheese`, "cream cheese"},
	{`(?:plain |greek |plain greek |nonfat plain |low[- ]fat plain )?yogh?urt`, "plain yogurt"},

	// cheeses
	{`(?:sharp |mild |extra[- ]sharp |shredded |grated )?(?:sharp )?cheddar(?: cheese)?`, "cheddar cheese"},
	{`(?:grated |shredded |fresh )?parmesan(?: cheese)?|parmigiano[- ]reggiano(?: cheese)?`, "parmesan cheese"},
	{`(?:shredded |fresh |part[- ]skim |low[- ]moisture )?mozzarella(?: cheese)?`, "mozzarella cheese"},
	{`(?:crumbled )?feta(?: cheese)?`, "feta cheese"},
	{`(?:shredded )?monterey jack(?: cheese)?`, "monterey jack cheese"},
	{`(?:part[- ]skim )?ricotta(?: cheese)?`, "ricotta cheese"},
	{`(?:shredded )?swiss(?: cheese)?`, "swiss cheese"},

	// oils
	{`(?:extra[- ]virgin |light )?olive oil`, "olive oil"},
	{`(?:toasted )?sesame oil`, "sesame oil"},
	{`(?:non[- ]?stick )?cooking spray`, "cooking spray"},
	{`(?:vegetable|canola|corn|sunflower|cooking) oil|oil`, "vegetable oil"},

	// poultry, meat and seafood
	{`(?:boneless |skinless |boneless skinless )*chicken breasts?(?: halves| fillets)?`, "chicken breast"},
	{`(?:boneless |skinless |boneless skinless )*chicken thighs?`, "chicken thigh"},
	{`(?:whole |cooked |cubed cooked )?chicken(?: pieces| meat)?`, "chicken"},
	{`(?:lean |extra[- ]lean )?ground beef|hamburger(?: meat)?|minced beef`, "ground beef"},
	{`(?:lean )?ground turkey`, "ground turkey"},
	{`(?:lean )?ground pork`, "ground pork"},
	{`(?:thick[- ]cut )?bacon(?: slices| strips)?`, "bacon"},
	{`(?:boneless )?pork chops?`, "pork chops"},
	{`(?:large |medium |raw |cooked )?(?:shrimp|prawns)`, "shrimp"},
	{`salmon(?: fillets?| steaks?)?`, "salmon"},

	// broths and canned goods
	{`(?:low[- ]sodium |reduced[- ]sodium |fat[- ]free )?chicken (?:broth|stock)`, "chicken broth"},
	{`(?:low[- ]sodium |reduced[- ]sodium )?beef (?:broth|stock)`, "beef broth"},
	{`(?:low[- ]sodium )?vegetable (?:broth|stock)`, "vegetable broth"},
	{`(?:canned )?diced tomatoes(?: with juice)?`, "diced tomatoes"},
	{`(?:canned )?crushed tomatoes`, "crushed tomatoes"},
	{`tomato sauce`, "tomato sauce"},
	{`tomato paste`, "tomato paste"},
	{`(?:ripe |roma |plum |large |medium |vine[- ]ripened )?tomato(?:es)?`, "tomato"},
	{`(?:canned )?black beans`, "black beans"},
	{`(?:red |dark red )?kidney beans`, "kidney beans"},
	{`chickpeas|garbanzo beans|garbanzos`, "chickpeas"},

	// fresh herbs
	{`(?:fresh )?(?:flat[- ]leaf |italian )?parsley(?: leaves| flakes)?`, "parsley"},
	{`(?:fresh )?cilantro(?: leaves)?|(?:fresh )?coriander leaves`, "cilantro"},
	{`(?:fresh )?basil(?: leaves)?`, "basil"},
	{`(?:fresh )?thyme(?: leaves| sprigs)?`, "thyme"},
	{`(?:fresh )?rosemary(?: leaves| sprigs)?`, "rosemary"},
	{`(?:fresh )?dill(?: weed)?`, "dill"},
	{`(?:fresh )?mint(?: leaves)?`, "mint"},
	{`bay leaf|bay leaves`, "bay leaf"},
	{`ground ginger`, "ground ginger"},
	{`(?:fresh )?ginger(?: ?root)?|gingerroot`, "ginger"},

	// spices
	{`(?:ground )?cinnamon`, "cinnamon"},
	{`(?:ground )?cumin`, "cumin"},
	{`(?:smoked |sweet |hungarian )?paprika`, "paprika"},
	{`chil[ie] powder`, "chili powder"},
	{`(?:ground )?nutmeg`, "nutmeg"},
	{`curry powder`, "curry powder"},
	{`italian seasoning`, "italian seasoning"},
	{`(?:dried )?oregano(?: leaves)?`, "oregano"},

	// vinegars and sauces
	{`balsamic vinegar`, "balsamic vinegar"},
	{`(?:apple )?cider vinegar`, "apple cider vinegar"},
	{`red wine vinegar`, "red wine vinegar"},
	{`(?:distilled )?(?:white )?vinegar`, "white vinegar"},
	{`(?:low[- ]sodium |light |dark )?soy sauce`, "soy sauce"},
	{`worcestershire(?: sauce)?`, "worcestershire sauce"},
	{`dijon(?:[- ]style)?(?: mustard)?`, "dijon mustard"},
	{`(?:yellow |prepared )?mustard`, "mustard"},
	{`hot (?:pepper )?sauce|tabasco(?: sauce)?`, "hot sauce"},
	{`(?:light |low[- ]fat )?mayonnaise|mayo`, "mayonnaise"},
	{`ketchup|catsup`, "ketchup"},
	{`(?:pure )?maple syrup`, "maple syrup"},
	{`(?:raw |pure )?honey`, "honey"},

	// vanilla
	{`(?:pure |real )?vanilla(?: extract| essence)?`, "vanilla extract"},

	// citrus
	{`(?:fresh )?lemon juice|juice of (?:1|one) lemon`, "lemon juice"},
	{`(?:fresh )?lime juice|juice of (?:1|one) lime`, "lime juice"},
	{`lemon (?:zest|rind|peel)`, "lemon zest"},
	{`lemons?`, "lemon"},
	{`limes?`, "lime"},

	// rice, pasta and bread
	{`brown rice`, "brown rice"},
	{`(?:long[- ]grain |white |long[- ]grain white |uncooked |instant )?rice`, "white rice"},
	{`spaghetti(?: noodles| pasta)?`, "spaghetti"},
	{`(?:elbow )?macaroni`, "macaroni"},
	{`(?:dry |uncooked )?pasta`, "pasta"},
	{`(?:dry |plain |italian[- ]seasoned |seasoned |fine )?bread ?crumbs|panko(?: bread ?crumbs)?`, "breadcrumbs"},
	{`(?:flour |corn )?tortillas?`, "tortilla"},
	{`(?:white |whole wheat |french |italian )?bread(?: slices)?|slices? (?:of )?bread`, "bread"},
	{`(?:old[- ]fashioned |quick[- ]cooking |quick )?(?:rolled )?oats|oatmeal`, "rolled oats"},

	// nuts
	{`(?:creamy |crunchy |smooth |chunky )?peanut butter`, "peanut butter"},
	{`walnuts?(?: halves| pieces)?`, "walnuts"},
	{`pecans?(?: halves| pieces)?`, "pecans"},
	{`(?:slivered )?almonds?`, "almonds"},
	{`(?:dry[- ]roasted |roasted |salted )?peanuts`, "peanuts"},

	// baking agents
	{`baking soda|bicarbonate of soda`, "baking soda"},
	{`baking powder`, "baking powder"},
	{`(?:active dry |instant |rapid[- ]rise |dry )?yeast`, "yeast"},
	{`corn ?starch|cornflour`, "cornstarch"},
	{`(?:unsweetened )?cocoa(?: powder)?`, "cocoa powder"},
	{`(?:semi[- ]?sweet |milk |dark )?chocolate (?:chips|morsels)`, "chocolate chips"},

	// produce
	{`carrots?`, "carrot"},
	{`celery(?: ribs?| stalks?)?|celery ribs?`, "celery"},
	{`(?:russet |baking |red |yukon gold |new )?potato(?:es)?`, "potato"},
	{`red (?:bell )?peppers?`, "red bell pepper"},
	{`(?:green )?bell peppers?|green peppers?`, "green bell pepper"},
	{`(?:button |white |baby bella |cremini )?mushrooms?`, "mushrooms"},
	{`(?:baby )?spinach(?: leaves)?`, "spinach"},
	{`zucchinis?`, "zucchini"},
	{`avocados?`, "avocado"},
	{`jalapenos?(?: peppers?| chil[ei]s?)?`, "jalapeno"},

	// water
	{`(?:cold |warm |hot |boiling |ice |lukewarm )?water`, "water"},
}
