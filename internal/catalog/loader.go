// internal/catalog/loader.go
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	apperrors "drivethru/internal/common/errors"
)

// Size-tier prices are derived from the base (medium) price once, at load.
// These are the only rounding points in the pricing chain.
var (
	smallCoef = decimal.NewFromFloat(0.75)
	largeCoef = decimal.NewFromFloat(1.25)
)

const (
	itemsFile       = "items.yaml"
	dealsFile       = "deals.yaml"
	upsellsFile     = "upsells.yaml"
	ingredientsFile = "ingredients.yaml"
)

type itemsDoc struct {
	Defaults struct {
		Fries string `yaml:"fries"`
	} `yaml:"defaults"`
	Combos []struct {
		Name  string  `yaml:"name"`
		Price float64 `yaml:"price"`
		Slots struct {
			Fries  []string `yaml:"fries"`
			Drinks []string `yaml:"drinks"`
		} `yaml:"slots"`
	} `yaml:"combos"`
	Items []menuItem `yaml:"items"`
}

type menuItem struct {
	Name       string  `yaml:"name"`
	Category   string  `yaml:"category"`
	Price      float64 `yaml:"price"`
	Properties []struct {
		Name   string   `yaml:"name"`
		Values []string `yaml:"values"`
	} `yaml:"properties"`
}

type dealsDoc struct {
	Deals []struct {
		Name          string   `yaml:"name"`
		PossibleItems []string `yaml:"possible_items"`
	} `yaml:"deals"`
}

type upsellsDoc struct {
	Combos []struct {
		Name  string `yaml:"name"`
		Slots struct {
			Sauces struct {
				Options []string `yaml:"options"`
			} `yaml:"sauces"`
		} `yaml:"slots"`
	} `yaml:"combos"`
	Items []menuItem `yaml:"items"`
}

type ingredientsDoc struct {
	Ingredients []struct {
		Name  string  `yaml:"name"`
		Price float64 `yaml:"price"`
	} `yaml:"ingredients"`
	Items []struct {
		Name                string   `yaml:"name"`
		Category            string   `yaml:"category"`
		DefaultIngredients  []string `yaml:"default_ingredients"`
		PossibleIngredients []string `yaml:"possible_ingredients"`
	} `yaml:"items"`
}

// Load reads the menu data files from dir and builds the catalog.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{
		Burgers:     map[string]Item{},
		Drinks:      map[string]Item{},
		Fries:       map[string]Item{},
		Desserts:    map[string]Item{},
		Combos:      map[string]Combo{},
		Sauces:      map[string]decimal.Decimal{},
		Ingredients: map[string]decimal.Decimal{},
	}

	if err := loadItems(filepath.Join(dir, itemsFile), c); err != nil {
		return nil, err
	}
	if err := loadDeals(filepath.Join(dir, dealsFile), c); err != nil {
		return nil, err
	}
	if err := loadUpsells(filepath.Join(dir, upsellsFile), c); err != nil {
		return nil, err
	}
	if err := loadIngredients(filepath.Join(dir, ingredientsFile), c); err != nil {
		return nil, err
	}

	if err := checkReferences(c); err != nil {
		return nil, err
	}
	return c, nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewMenuLoadFailedError(err.Error())
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return apperrors.NewMenuFileInvalidError(fmt.Sprintf("%s: %v", path, err))
	}
	return nil
}

func loadItems(path string, c *Catalog) error {
	var doc itemsDoc
	if err := readYAML(path, &doc); err != nil {
		return err
	}

	c.DefaultFries = doc.Defaults.Fries

	for _, combo := range doc.Combos {
		base := decimal.NewFromFloat(combo.Price)
		c.Combos[combo.Name] = Combo{
			SizePrice: sizeTiers(base, []string{"small", "medium", "large"}),
			Fries:     combo.Slots.Fries,
			Drinks:    combo.Slots.Drinks,
		}
	}

	for _, item := range doc.Items {
		base := decimal.NewFromFloat(item.Price)
		entry := Item{Price: base}

		switch item.Category {
		case "burgers":
			c.Burgers[item.Name] = entry
		case "desserts":
			c.Desserts[item.Name] = entry
		case "drinks", "fries":
			sizes := []string{"default"}
			for _, p := range item.Properties {
				if p.Name == "size" && len(p.Values) > 0 {
					sizes = p.Values
				}
			}
			entry.SizePrice = sizeTiers(base, sizes)
			if item.Category == "drinks" {
				c.Drinks[item.Name] = entry
			} else {
				c.Fries[item.Name] = entry
			}
		default:
			return apperrors.NewMenuFileInvalidError(
				fmt.Sprintf("%s: item %q has unsupported category %q", path, item.Name, item.Category))
		}
	}
	return nil
}

func loadDeals(path string, c *Catalog) error {
	var doc dealsDoc
	if err := readYAML(path, &doc); err != nil {
		return err
	}
	for _, d := range doc.Deals {
		c.Deals = append(c.Deals, Deal{Name: d.Name, Eligible: d.PossibleItems})
	}
	return nil
}

func loadUpsells(path string, c *Catalog) error {
	var doc upsellsDoc
	if err := readYAML(path, &doc); err != nil {
		return err
	}
	for _, cb := range doc.Combos {
		entry, ok := c.Combos[cb.Name]
		if !ok {
			return apperrors.NewMenuFileInvalidError(
				fmt.Sprintf("%s: sauce slot for unknown combo %q", path, cb.Name))
		}
		entry.Sauces = cb.Slots.Sauces.Options
		c.Combos[cb.Name] = entry
	}
	for _, item := range doc.Items {
		if item.Category != "sauces" {
			return apperrors.NewMenuFileInvalidError(
				fmt.Sprintf("%s: item %q has unsupported category %q", path, item.Name, item.Category))
		}
		c.Sauces[item.Name] = decimal.NewFromFloat(item.Price)
	}
	return nil
}

func loadIngredients(path string, c *Catalog) error {
	var doc ingredientsDoc
	if err := readYAML(path, &doc); err != nil {
		return err
	}
	for _, ing := range doc.Ingredients {
		c.Ingredients[ing.Name] = decimal.NewFromFloat(ing.Price)
	}
	for _, item := range doc.Items {
		var table map[string]Item
		switch item.Category {
		case "burgers":
			table = c.Burgers
		case "drinks":
			table = c.Drinks
		case "fries":
			table = c.Fries
		case "desserts":
			table = c.Desserts
		default:
			return apperrors.NewMenuFileInvalidError(
				fmt.Sprintf("%s: ingredient lists for unsupported category %q", path, item.Category))
		}
		entry, ok := table[item.Name]
		if !ok {
			return apperrors.NewMenuFileInvalidError(
				fmt.Sprintf("%s: ingredient lists for unknown item %q", path, item.Name))
		}
		entry.DefaultIngredients = item.DefaultIngredients
		entry.PossibleIngredients = item.PossibleIngredients
		table[item.Name] = entry
	}
	return nil
}

// sizeTiers derives the per-size unit prices from a base price. Small and
// large tiers are rounded to 2 decimal places here and never re-rounded.
func sizeTiers(base decimal.Decimal, sizes []string) map[string]decimal.Decimal {
	table := make(map[string]decimal.Decimal, len(sizes))
	for _, s := range sizes {
		switch s {
		case "small":
			table[s] = base.Mul(smallCoef).Round(2)
		case "large":
			table[s] = base.Mul(largeCoef).Round(2)
		default:
			table[s] = base
		}
	}
	return table
}

// checkReferences verifies cross-file name references so the engine can
// trust every slot and eligibility list at run time.
func checkReferences(c *Catalog) error {
	for name, cb := range c.Combos {
		if _, ok := c.Burgers[c.ComboBurger(name)]; !ok {
			return apperrors.NewMenuFileInvalidError(
				fmt.Sprintf("combo %q implies unknown burger %q", name, c.ComboBurger(name)))
		}
		for _, f := range cb.Fries {
			if _, ok := c.Fries[f]; !ok {
				return apperrors.NewMenuFileInvalidError(
					fmt.Sprintf("combo %q allows unknown fries %q", name, f))
			}
		}
		for _, d := range cb.Drinks {
			if _, ok := c.Drinks[d]; !ok {
				return apperrors.NewMenuFileInvalidError(
					fmt.Sprintf("combo %q allows unknown drink %q", name, d))
			}
		}
		for _, s := range cb.Sauces {
			if _, ok := c.Sauces[s]; !ok {
				return apperrors.NewMenuFileInvalidError(
					fmt.Sprintf("combo %q allows unknown sauce %q", name, s))
			}
		}
	}
	for _, deal := range c.Deals {
		for _, b := range deal.Eligible {
			if _, ok := c.Burgers[b]; !ok {
				return apperrors.NewMenuFileInvalidError(
					fmt.Sprintf("deal %q lists unknown burger %q", deal.Name, b))
			}
		}
	}
	if c.DefaultFries != "" {
		if _, ok := c.Fries[c.DefaultFries]; !ok {
			return apperrors.NewMenuFileInvalidError(
				fmt.Sprintf("default fries item %q is not on the menu", c.DefaultFries))
		}
	}
	return nil
}
