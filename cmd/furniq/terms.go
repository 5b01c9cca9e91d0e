package main

import (
	"fmt"

	"github.com/fwojciec/furniq"
)

// Run executes the terms add command.
func (c *TermsAddCmd) Run(deps *Dependencies) error {
	category, err := furniq.ParseCategory(c.Category)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furniq.ErrorMessage(err))
		return err
	}

	term := &furniq.Term{Category: category, Name: c.Name}
	if err := deps.Terms.CreateTerm(deps.Ctx, term); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furniq.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added %s %q (%s)\n", term.Category, term.Name, term.ID)
	return nil
}

// Run executes the terms list command.
func (c *TermsListCmd) Run(deps *Dependencies) error {
	filter := furniq.TermFilter{Offset: c.Offset, Limit: c.Limit}
	if c.Category != "" {
		category, err := furniq.ParseCategory(c.Category)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", furniq.ErrorMessage(err))
			return err
		}
		filter.Category = &category
	}

	terms, err := deps.Terms.FindTerms(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furniq.ErrorMessage(err))
		return err
	}

	if len(terms) == 0 {
		fmt.Fprintln(deps.Stdout, "No terms found. Use 'furniq terms add' to create one.")
		return nil
	}

	for _, t := range terms {
		fmt.Fprintf(deps.Stdout, "%s  %-11s  %s\n", t.ID, t.Category, t.Name)
	}
	return nil
}

// Run executes the terms delete command.
func (c *TermsDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Terms.DeleteTerm(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furniq.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted term %s\n", c.ID)
	return nil
}
