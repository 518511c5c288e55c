//go:build gui

package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/metcalfc/bcc/internal/reveal"
)

type window struct {
	*companion
	snap reveal.Snapshot

	win        fyne.Window
	title      *widget.Label
	status     *widget.Label
	bar        *widget.ProgressBar
	scenes     *widget.List
	characters *widget.Accordion
	locations  *widget.Accordion
	recap      *fyne.Container
}

func cardItems(cards []reveal.Card, empty string) []*widget.AccordionItem {
	if len(cards) == 0 {
		return []*widget.AccordionItem{widget.NewAccordionItem(empty, widget.NewLabel(""))}
	}

	items := make([]*widget.AccordionItem, len(cards))
	for i, c := range cards {
		title := strings.TrimSpace(c.Icon + " " + c.Name)
		if c.Category != "" {
			title += " · " + c.Category
		}
		title += fmt.Sprintf("  ×%d", c.Count)
		if c.InScene {
			title += "  ● in scene"
		}

		text := c.Description
		if c.LastSeen != "" && !c.InScene {
			text += "\n\nLast seen: " + c.LastSeen
		}
		detail := widget.NewLabel(text)
		detail.Wrapping = fyne.TextWrapWord

		items[i] = widget.NewAccordionItem(title, detail)
	}
	return items
}

func sceneLabel(s reveal.Scene) string {
	switch s.State {
	case reveal.SceneRead:
		return "✓ " + s.Title
	case reveal.SceneCurrent:
		return "▶ " + s.Title
	case reveal.SceneNext:
		return "○ " + s.Title
	default:
		return "· " + s.Title
	}
}

func (w *window) update() {
	w.snap = w.Snapshot()

	w.title.SetText(fmt.Sprintf("%s by %s · %s", w.Book.Title, w.Book.Author, w.CurrentSection()))
	read, total := w.Progress()
	w.status.SetText(fmt.Sprintf("Scene %d/%d · %.0f%%", read, total, w.Percent()))
	w.bar.SetValue(w.Percent() / 100)

	w.scenes.Refresh()
	w.scenes.ScrollTo(w.Position)

	w.characters.Items = cardItems(w.snap.Characters, "No characters yet.")
	w.characters.Refresh()
	w.locations.Items = cardItems(w.snap.Locations, "No locations yet.")
	w.locations.Refresh()

	w.recap.Objects = nil
	for _, e := range w.snap.Recap {
		if e.Section != "" {
			w.recap.Add(widget.NewLabelWithStyle(e.Section, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		}
		title := widget.NewLabelWithStyle(e.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: e.Current})
		micro := widget.NewLabelWithStyle(e.Micro, fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
		micro.Wrapping = fyne.TextWrapWord
		w.recap.Add(title)
		w.recap.Add(micro)
	}
	w.recap.Refresh()
}

func runCompanion(c *companion) error {
	a := app.New()
	w := &window{
		companion:  c,
		snap:       c.Snapshot(),
		win:        a.NewWindow("bcc - " + c.Book.Title),
		title:      widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		status:     widget.NewLabel(""),
		bar:        widget.NewProgressBar(),
		characters: widget.NewAccordion(),
		locations:  widget.NewAccordion(),
		recap:      container.NewVBox(),
	}

	w.scenes = widget.NewList(
		func() int { return len(w.snap.Scenes) },
		func() fyne.CanvasObject {
			section := widget.NewLabelWithStyle("Section", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
			title := widget.NewLabel("Title")
			micro := widget.NewLabelWithStyle("Micro", fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
			micro.Truncation = fyne.TextTruncateEllipsis
			return container.NewVBox(section, title, micro)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			s := w.snap.Scenes[id]
			vbox := obj.(*fyne.Container)
			sectionLabel := vbox.Objects[0].(*widget.Label)
			titleLabel := vbox.Objects[1].(*widget.Label)
			microLabel := vbox.Objects[2].(*widget.Label)

			section := s.Section
			if s.SectionLocked {
				section = "🔒 " + section
			}
			sectionLabel.SetText(section)
			titleLabel.TextStyle.Bold = s.State == reveal.SceneCurrent
			titleLabel.SetText(sceneLabel(s))
			microLabel.SetText(s.Micro)
		},
	)
	w.scenes.OnSelected = func(id widget.ListItemID) {
		if w.JumpTo(id) {
			w.save()
		}
		w.scenes.Unselect(id)
		w.update()
	}

	markRead := widget.NewButton("Mark read →", func() {
		if w.Advance() {
			w.save()
			w.update()
		}
	})
	back := widget.NewButton("← Back", func() {
		if w.Back() {
			w.save()
			w.update()
		}
	})
	restart := widget.NewButton("Restart", func() {
		w.restart()
		w.update()
	})

	header := container.NewVBox(
		w.title,
		container.NewBorder(nil, nil, nil, w.status, w.bar),
	)
	controls := container.NewHBox(back, markRead, restart)

	tabs := container.NewAppTabs(
		container.NewTabItem("Position", w.scenes),
		container.NewTabItem("Characters", container.NewVScroll(w.characters)),
		container.NewTabItem("Locations", container.NewVScroll(w.locations)),
		container.NewTabItem("Recap", container.NewVScroll(w.recap)),
	)

	w.win.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyRight:
			if w.Advance() {
				w.save()
				w.update()
			}
		case fyne.KeyLeft:
			if w.Back() {
				w.save()
				w.update()
			}
		case fyne.KeyQ:
			w.save()
			a.Quit()
		}
	})
	w.win.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case '[':
			w.PrevPart()
			w.save()
			w.update()
		case '1', '2', '3', '4':
			tabs.SelectIndex(int(r - '1'))
		}
	})

	w.win.SetOnClosed(w.save)
	w.win.SetContent(container.NewBorder(header, controls, nil, nil, tabs))
	w.win.Resize(fyne.NewSize(480, 720))
	w.update()
	w.win.ShowAndRun()
	return nil
}
