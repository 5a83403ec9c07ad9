package render

// controlProgram is the client-side filtering logic embedded in every
// rendered document. It operates purely over the data attributes the
// renderer attaches to each message: filtering toggles visibility of the
// already-rendered elements and never mutates their content or order.
// CONFIG (defaults) is prepended by controlScript.
const controlProgram = `
document.addEventListener('DOMContentLoaded', function() {
  var messages = document.querySelectorAll('.message');
  var dividers = document.querySelectorAll('.date-divider');

  // filter state; everything except panel ergonomics and the perspective
  // choice resets to defaults on load
  var state = {
    perspective: CONFIG.defaultPerspective,
    showText: true,
    showMedia: true,
    dateFrom: '',
    dateTo: '',
    dock: localStorage.getItem('wabrowse-dock') || 'left',
    minimized: localStorage.getItem('wabrowse-minimized') === 'true'
  };

  var selector = document.getElementById('perspective');
  var saved = localStorage.getItem('wabrowse-perspective');
  if (saved) {
    for (var i = 0; i < selector.options.length; i++) {
      if (selector.options[i].value === saved) { state.perspective = saved; break; }
    }
  }
  selector.value = state.perspective;

  function applyPerspective() {
    messages.forEach(function(el) {
      if (el.classList.contains('system')) return;
      var mine = el.dataset.sender === state.perspective;
      el.classList.toggle('sent', mine);
      el.classList.toggle('received', !mine);
    });
  }

  function applyVisibility() {
    document.body.classList.toggle('hide-text', !state.showText);
    document.body.classList.toggle('hide-media', !state.showMedia);
  }

  function inRange(date) {
    if (!state.dateFrom && !state.dateTo) return true;
    if (!date) return true; // undated entries (additional media) stay visible
    if (state.dateFrom && date < state.dateFrom) return false;
    if (state.dateTo && date > state.dateTo) return false;
    return true;
  }

  function applyDateFilter() {
    messages.forEach(function(el) {
      el.classList.toggle('date-out', !inRange(el.dataset.date));
    });
    dividers.forEach(function(el) {
      el.classList.toggle('date-out', !inRange(el.dataset.date));
    });
  }

  selector.addEventListener('change', function() {
    state.perspective = selector.value;
    localStorage.setItem('wabrowse-perspective', state.perspective);
    applyPerspective();
  });

  var toggleText = document.getElementById('toggle-text');
  var toggleMedia = document.getElementById('toggle-media');
  toggleText.addEventListener('change', function() {
    state.showText = toggleText.checked;
    applyVisibility();
  });
  toggleMedia.addEventListener('change', function() {
    state.showMedia = toggleMedia.checked;
    applyVisibility();
  });

  var dateFrom = document.getElementById('date-from');
  var dateTo = document.getElementById('date-to');
  document.getElementById('apply-filter').addEventListener('click', function() {
    state.dateFrom = dateFrom.value;
    state.dateTo = dateTo.value;
    applyDateFilter();
  });
  document.getElementById('clear-filter').addEventListener('click', function() {
    dateFrom.value = '';
    dateTo.value = '';
    state.dateFrom = '';
    state.dateTo = '';
    applyDateFilter();
  });

  // dockable controls panel
  var wrapper = document.getElementById('controls-wrapper');
  var panelToggle = document.getElementById('panel-toggle');
  var dockLeft = document.getElementById('dock-left');
  var dockRight = document.getElementById('dock-right');

  function applyDock() {
    wrapper.classList.toggle('left', state.dock === 'left');
    wrapper.classList.toggle('right', state.dock === 'right');
    wrapper.classList.toggle('minimized', state.minimized);
    dockLeft.classList.toggle('active', state.dock === 'left');
    dockRight.classList.toggle('active', state.dock === 'right');
    var out = state.dock === 'left' ? '→' : '←';
    var back = state.dock === 'left' ? '←' : '→';
    panelToggle.textContent = state.minimized ? out : back;
    localStorage.setItem('wabrowse-dock', state.dock);
    localStorage.setItem('wabrowse-minimized', state.minimized);
  }

  panelToggle.addEventListener('click', function() {
    state.minimized = !state.minimized;
    applyDock();
  });
  dockLeft.addEventListener('click', function() { state.dock = 'left'; applyDock(); });
  dockRight.addEventListener('click', function() { state.dock = 'right'; applyDock(); });

  // full-size image overlay
  var modal = document.getElementById('image-modal');
  var modalImg = modal.querySelector('.modal-img');
  document.querySelectorAll('.media img').forEach(function(img) {
    img.addEventListener('click', function() {
      modalImg.src = img.src;
      modal.style.display = 'block';
    });
  });
  modal.addEventListener('click', function() { modal.style.display = 'none'; });

  applyPerspective();
  applyVisibility();
  applyDateFilter();
  applyDock();
});
`
