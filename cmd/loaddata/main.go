// Command main imports catalog fixtures (ingredients and tags) into the
// Foodgram database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/models"
	"foodgram/internal/repository"

	"gopkg.in/yaml.v3"
)

func main() {
	ingredientsPath := flag.String("ingredients", "", "Path to ingredients JSON fixture")
	tagsPath := flag.String("tags", "", "Path to tags YAML fixture")
	flag.Parse()

	if *ingredientsPath == "" && *tagsPath == "" {
		log.Fatal("Nothing to do: pass -ingredients and/or -tags")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()

	if *ingredientsPath != "" {
		ingredients, err := readIngredients(*ingredientsPath)
		if err != nil {
			log.Fatalf("Failed to read ingredients fixture: %v", err)
		}
		repo := repository.NewIngredientRepository(db)
		if err := repo.CreateBatch(ctx, ingredients); err != nil {
			log.Fatalf("Failed to import ingredients: %v", err)
		}
		log.Printf("Imported %d ingredients from %s", len(ingredients), *ingredientsPath)
	}

	if *tagsPath != "" {
		tags, err := readTags(*tagsPath)
		if err != nil {
			log.Fatalf("Failed to read tags fixture: %v", err)
		}
		repo := repository.NewTagRepository(db)
		if err := repo.CreateBatch(ctx, tags); err != nil {
			log.Fatalf("Failed to import tags: %v", err)
		}
		log.Printf("Imported %d tags from %s", len(tags), *tagsPath)
	}
}

func readIngredients(path string) ([]models.Ingredient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	ingredients := make([]models.Ingredient, 0, len(items))
	for _, it := range items {
		ingredients = append(ingredients, models.Ingredient{
			Name:            it.Name,
			MeasurementUnit: it.MeasurementUnit,
		})
	}
	return ingredients, nil
}

func readTags(path string) ([]models.Tag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []struct {
		Name  string `yaml:"name"`
		Color string `yaml:"color"`
		Slug  string `yaml:"slug"`
	}
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	tags := make([]models.Tag, 0, len(items))
	for _, it := range items {
		tags = append(tags, models.Tag{
			Name:  it.Name,
			Color: it.Color,
			Slug:  it.Slug,
		})
	}
	return tags, nil
}
