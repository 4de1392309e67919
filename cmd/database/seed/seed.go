// Package seed loads the starter catalog: categories, the ingredient pantry,
// a few users, twenty recipes with their ingredient lines, and a handful of
// reviews. Safe to run repeatedly, every insert checks for an existing row
// first.
package seed

import (
	"errors"
	"fmt"
	"time"

	"nalastable/entities"

	"gorm.io/gorm"
)

type recipeDef struct {
	Title        string
	Description  string
	Instructions string
	Servings     int
	PrepTime     int
	CookTime     int
	ImageURL     string
	Category     string
	Lines        []lineDef
}

type lineDef struct {
	Ingredient string
	Quantity   float64
}

type reviewDef struct {
	Recipe string
	User   string
	Rating int
	Title  string
	Body   string
}

var categoryDefs = []entities.Category{
	{Name: "Breakfast", Description: "Morning meals"},
	{Name: "Lunch", Description: "Midday dishes"},
	{Name: "Dinner", Description: "Evening entrees"},
	{Name: "Dessert", Description: "Sweet finishes"},
	{Name: "Vegan", Description: "Plant-based dishes"},
}

var ingredientDefs = []entities.Ingredient{
	{Name: "Eggs", Unit: "each"},
	{Name: "Flour", Unit: "cup"},
	{Name: "Sugar", Unit: "tbsp"},
	{Name: "Milk", Unit: "cup"},
	{Name: "Butter", Unit: "tbsp"},
	{Name: "Salt", Unit: "tsp"},
	{Name: "Olive Oil", Unit: "tbsp"},
	{Name: "Garlic", Unit: "clove"},
	{Name: "Onion", Unit: "each"},
	{Name: "Tomato", Unit: "each"},
	{Name: "Basil", Unit: "tsp"},
	{Name: "Pasta", Unit: "cup"},
	{Name: "Avocado", Unit: "each"},
	{Name: "Chicken", Unit: "lb"},
	{Name: "Rice", Unit: "cup"},
	{Name: "Soy Sauce", Unit: "tbsp"},
	{Name: "Honey", Unit: "tbsp"},
	{Name: "Cocoa Powder", Unit: "tbsp"},
	{Name: "Baking Powder", Unit: "tsp"},
	{Name: "Blueberries", Unit: "cup"},
	{Name: "Shrimp", Unit: "lb"},
	{Name: "Quinoa", Unit: "cup"},
	{Name: "Beef", Unit: "lb"},
	{Name: "Breadcrumbs", Unit: "cup"},
	{Name: "Parsley", Unit: "tbsp"},
}

var userDefs = []entities.User{
	{UserName: "nala", Email: "nala@example.com", DisplayName: "Nala"},
	{UserName: "chef_ari", Email: "ari@example.com", DisplayName: "Ari"},
	{UserName: "sam", Email: "sam@example.com", DisplayName: "Sam"},
	{UserName: "june", Email: "june@example.com", DisplayName: "June"},
}

var recipeDefs = []recipeDef{
	{
		Title: "Spaghetti Carbonara", Description: "Classic Italian pasta with eggs, cheese, and pancetta.",
		Instructions: "Boil pasta; fry pancetta; whisk eggs and cheese; combine off heat.",
		Servings: 4, PrepTime: 15, CookTime: 20, ImageURL: "Images/SpaghettiCarbonara.jpg", Category: "Dinner",
		Lines: []lineDef{{"Pasta", 2}, {"Eggs", 3}, {"Salt", 1}},
	},
	{
		Title: "Chocolate Lava Cake", Description: "Rich individual cakes with molten chocolate centers.",
		Instructions: "Prepare batter; bake until edges set and centers are gooey.",
		Servings: 2, PrepTime: 20, CookTime: 12, ImageURL: "Images/LavaCake.jpg", Category: "Dessert",
		Lines: []lineDef{{"Sugar", 3}, {"Flour", 0.75}, {"Butter", 2}, {"Milk", 0.25}, {"Cocoa Powder", 0.5}},
	},
	{
		Title: "Avocado Toast", Description: "Toasted bread topped with mashed avocado and seasoning.",
		Instructions: "Toast bread; mash avocado; season and spread.",
		Servings: 1, PrepTime: 5, CookTime: 0, ImageURL: "Images/AvoToast.jpg", Category: "Breakfast",
		Lines: []lineDef{{"Avocado", 1}, {"Salt", 0.25}, {"Olive Oil", 0.5}},
	},
	{
		Title: "Buttermilk Pancakes", Description: "Fluffy pancakes perfect for weekend breakfasts.",
		Instructions: "Mix batter; cook on griddle until golden; serve with syrup.",
		Servings: 4, PrepTime: 10, CookTime: 15, ImageURL: "Images/Pancakes.jpg", Category: "Breakfast",
		Lines: []lineDef{{"Flour", 1.5}, {"Milk", 1.25}, {"Eggs", 1}, {"Baking Powder", 1}},
	},
	{
		Title: "Chicken Curry", Description: "Savory curry with tender chicken and aromatic spices.",
		Instructions: "Sauté aromatics; add chicken and spices; simmer with coconut milk.",
		Servings: 4, PrepTime: 20, CookTime: 40, ImageURL: "Images/ChickenCurry.jpg", Category: "Dinner",
		Lines: []lineDef{{"Garlic", 2}, {"Rice", 1.5}, {"Chicken", 1.5}},
	},
	{
		Title: "Veggie Stir Fry", Description: "Quick stir-fry with colorful vegetables and soy-honey glaze.",
		Instructions: "Stir-fry vegetables; add sauce; serve over rice.",
		Servings: 2, PrepTime: 10, CookTime: 10, ImageURL: "Images/VeggieStirFry.jpg", Category: "Lunch",
		Lines: []lineDef{{"Soy Sauce", 2}, {"Garlic", 1}, {"Rice", 1}},
	},
	{
		Title: "Blueberry Muffins", Description: "Moist muffins studded with fresh blueberries.",
		Instructions: "Mix wet and dry ingredients; fold in berries; bake.",
		Servings: 8, PrepTime: 15, CookTime: 20, ImageURL: "Images/BlueberryMuffins.jpg", Category: "Breakfast",
		Lines: []lineDef{{"Flour", 1.5}, {"Sugar", 0.75}, {"Blueberries", 1}},
	},
	{
		Title: "Creamy Tomato Soup", Description: "Comforting tomato soup finished with cream and basil.",
		Instructions: "Sauté onion and garlic; add tomatoes; simmer and blend.",
		Servings: 4, PrepTime: 10, CookTime: 30, ImageURL: "Images/TomatoSoup.jpg", Category: "Lunch",
		Lines: []lineDef{{"Tomato", 4}, {"Basil", 1}, {"Onion", 1}},
	},
	{
		Title: "Grilled Cheese Sandwich", Description: "Golden, melty grilled cheese on buttered bread.",
		Instructions: "Butter bread; assemble with cheese; grill until golden.",
		Servings: 1, PrepTime: 5, CookTime: 8, ImageURL: "Images/GrilledCheese.jpg", Category: "Lunch",
		Lines: []lineDef{{"Butter", 1}},
	},
	{
		Title: "Shrimp Tacos", Description: "Crispy shrimp with slaw and lime crema in warm tortillas.",
		Instructions: "Season and cook shrimp; assemble tacos with slaw and sauce.",
		Servings: 4, PrepTime: 20, CookTime: 10, ImageURL: "Images/ShrimpTacos.jpg", Category: "Dinner",
		Lines: []lineDef{{"Shrimp", 1}, {"Garlic", 0.5}},
	},
	{
		Title: "Quinoa Salad", Description: "Light salad with quinoa, veggies, and lemon dressing.",
		Instructions: "Cook quinoa; toss with vegetables and dressing.",
		Servings: 3, PrepTime: 15, CookTime: 15, ImageURL: "Images/QuinoaSalad.jpg", Category: "Vegan",
		Lines: []lineDef{{"Quinoa", 1}, {"Olive Oil", 1}},
	},
	{
		Title: "Hearty Beef Stew", Description: "Slow-simmered beef with root vegetables and rich broth.",
		Instructions: "Brown beef; add vegetables and stock; simmer until tender.",
		Servings: 6, PrepTime: 25, CookTime: 120, ImageURL: "Images/BeefStew.jpg", Category: "Dinner",
		Lines: []lineDef{{"Beef", 2}, {"Onion", 1}},
	},
	{
		Title: "Lemon Bars", Description: "Tangy lemon filling on a buttery shortbread crust.",
		Instructions: "Bake crust; pour lemon filling; bake and cool before slicing.",
		Servings: 12, PrepTime: 20, CookTime: 25, ImageURL: "Images/LemonBars.jpg", Category: "Dessert",
		Lines: []lineDef{{"Flour", 1.25}, {"Sugar", 1}},
	},
	{
		Title: "Falafel Wrap", Description: "Crispy falafel with tahini and fresh vegetables in a wrap.",
		Instructions: "Form and fry falafel; assemble in wrap with sauce.",
		Servings: 2, PrepTime: 25, CookTime: 15, ImageURL: "Images/FalafelWrap.jpg", Category: "Vegan",
		Lines: []lineDef{{"Garlic", 1}, {"Parsley", 0.5}},
	},
	{
		Title: "Baked Mac and Cheese", Description: "Creamy macaroni baked with a crunchy breadcrumb topping.",
		Instructions: "Cook pasta; make cheese sauce; combine and bake.",
		Servings: 4, PrepTime: 15, CookTime: 30, ImageURL: "Images/MacAndCheese.jpg", Category: "Dinner",
		Lines: []lineDef{{"Butter", 2}, {"Milk", 1.5}, {"Breadcrumbs", 0.5}},
	},
	{
		Title: "Caesar Salad", Description: "Crisp romaine with creamy Caesar dressing and croutons.",
		Instructions: "Toss romaine with dressing, cheese, and croutons.",
		Servings: 2, PrepTime: 10, CookTime: 0, ImageURL: "Images/CaesarSalad.jpg", Category: "Lunch",
		Lines: []lineDef{{"Basil", 0.5}},
	},
	{
		Title: "Banana Bread", Description: "Moist banana bread with a tender crumb.",
		Instructions: "Mix batter; pour into loaf pan; bake until a skewer comes out clean.",
		Servings: 8, PrepTime: 15, CookTime: 60, ImageURL: "Images/BananaBread.jpg", Category: "Dessert",
		Lines: []lineDef{{"Flour", 2}, {"Sugar", 1}},
	},
	{
		Title: "Tofu Scramble", Description: "Savory tofu scramble with turmeric and vegetables.",
		Instructions: "Crumble tofu; sauté with vegetables and spices.",
		Servings: 2, PrepTime: 10, CookTime: 10, ImageURL: "Images/TofuScramble.jpg", Category: "Vegan",
		Lines: []lineDef{{"Garlic", 1}, {"Onion", 1}},
	},
	{
		Title: "Garlic Bread", Description: "Buttery garlic bread with parsley and parmesan.",
		Instructions: "Spread garlic butter on bread; bake until golden.",
		Servings: 6, PrepTime: 5, CookTime: 10, ImageURL: "Images/GarlicBread.jpg", Category: "Lunch",
		Lines: []lineDef{{"Butter", 3}, {"Garlic", 2}},
	},
	{
		Title: "Tomato Basil Bruschetta", Description: "Toasted baguette slices topped with tomato, basil, and olive oil.",
		Instructions: "Toast bread; mix tomato, basil, olive oil; spoon on top.",
		Servings: 4, PrepTime: 10, CookTime: 5, ImageURL: "Images/Bruschetta.jpg", Category: "Lunch",
		Lines: []lineDef{{"Tomato", 2}, {"Basil", 0.5}, {"Olive Oil", 0.5}},
	},
}

var reviewDefs = []reviewDef{
	{"Spaghetti Carbonara", "nala", 5, "Authentic taste!", "Reminds me of Rome — creamy and delicious."},
	{"Chocolate Lava Cake", "chef_ari", 4, "Rich and gooey", "Perfect dessert, though a bit sweet for me."},
	{"Avocado Toast", "sam", 5, "Quick breakfast", "Healthy, simple, and tasty — my go-to morning meal."},
	{"Buttermilk Pancakes", "june", 4, "Fluffy!", "Light and fluffy pancakes."},
	{"Chicken Curry", "nala", 5, "Comfort food", "Perfect balance of spice and creaminess."},
	{"Blueberry Muffins", "sam", 4, "Great muffins", "Moist and full of berries."},
	{"Hearty Beef Stew", "chef_ari", 5, "Hearty", "Perfect for a cold day."},
}

func Seed(db *gorm.DB) error {
	for i := range categoryDefs {
		var existing entities.Category
		err := db.Where("name = ?", categoryDefs[i].Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&categoryDefs[i]).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	for i := range ingredientDefs {
		var existing entities.Ingredient
		err := db.Where("name = ?", ingredientDefs[i].Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&ingredientDefs[i]).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	for i := range userDefs {
		var existing entities.User
		err := db.Where("user_name = ?", userDefs[i].UserName).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&userDefs[i]).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	// Recipes get staggered creation times so the newest ordering is
	// well defined from the start.
	base := time.Now().UTC().Add(-time.Duration(len(recipeDefs)) * time.Minute)

	for i, def := range recipeDefs {
		var category entities.Category
		if err := db.Where("name = ?", def.Category).First(&category).Error; err != nil {
			return err
		}

		var recipe entities.Recipe
		err := db.Where("title = ?", def.Title).First(&recipe).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			createdAt := base.Add(time.Duration(i) * time.Minute)
			recipe = entities.Recipe{
				Title:        def.Title,
				Description:  def.Description,
				Instructions: def.Instructions,
				Servings:     def.Servings,
				PrepTime:     def.PrepTime,
				CookTime:     def.CookTime,
				ImageURL:     def.ImageURL,
				CategoryID:   category.ID,
				Timestamp: entities.Timestamp{
					CreatedAt: createdAt,
					UpdatedAt: createdAt,
				},
			}
			if err := db.Create(&recipe).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, line := range def.Lines {
			var ingredient entities.Ingredient
			if err := db.Where("name = ?", line.Ingredient).First(&ingredient).Error; err != nil {
				return err
			}

			var count int64
			if err := db.Model(&entities.RecipeIngredient{}).
				Where("recipe_id = ? AND ingredient_id = ?", recipe.ID, ingredient.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			ri := entities.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredient.ID,
				Quantity:     line.Quantity,
			}
			if err := db.Create(&ri).Error; err != nil {
				return err
			}
		}
	}

	for _, def := range reviewDefs {
		var recipe entities.Recipe
		if err := db.Where("title = ?", def.Recipe).First(&recipe).Error; err != nil {
			return err
		}
		var reviewer entities.User
		if err := db.Where("user_name = ?", def.User).First(&reviewer).Error; err != nil {
			return err
		}

		var count int64
		if err := db.Model(&entities.Review{}).
			Where("recipe_id = ? AND user_id = ?", recipe.ID, reviewer.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		review := entities.Review{
			RecipeID:     recipe.ID,
			UserID:       &reviewer.ID,
			ReviewerName: reviewer.DisplayName,
			Rating:       def.Rating,
			Title:        def.Title,
			Body:         def.Body,
			CreatedAt:    time.Now().UTC(),
		}
		if err := db.Create(&review).Error; err != nil {
			return err
		}
	}

	fmt.Println("Database seeding complete")
	return nil
}
