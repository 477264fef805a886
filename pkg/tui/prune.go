package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/MANRAF04/uni-schedule/pkg/store"
)

// RunPrune runs the interactive flow for pruning courses: every distinct
// title is offered pre-selected, and whatever the user deselects is removed
// from the schedule across all weekdays.
func RunPrune(st *store.Store) error {
	set := st.Sessions()
	titles := set.DistinctTitles()

	if len(titles) == 0 {
		fmt.Println(errorStyle.Render("The schedule is empty — nothing to prune."))
		return nil
	}

	var options []huh.Option[string]
	for _, title := range titles {
		options = append(options, huh.NewOption(title, title).Selected(true))
	}

	keep := make([]string, 0, len(titles))
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select courses to keep").
				Description("Space = toggle, Enter = confirm. Deselected courses are removed.").
				Options(options...).
				Value(&keep).
				Filterable(true).
				Height(12),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	keeping := make(map[string]bool, len(keep))
	for _, title := range keep {
		keeping[title] = true
	}

	removedSessions := 0
	removedTitles := 0
	for _, title := range titles {
		if keeping[title] {
			continue
		}
		removed, _ := st.RemoveTitle(title)
		removedSessions += removed
		removedTitles++
	}

	if removedTitles == 0 {
		fmt.Println(accentStyle.Render("Nothing removed, schedule unchanged."))
		return nil
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf(
		"Removed %d course(s), %d session(s). %d course(s) remaining.",
		removedTitles, removedSessions, st.DistinctCount())))
	return nil
}
